package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DraftRepository persists per-user draft documents for one form family.
// The same implementation serves both survey and partner-mapping drafts,
// bound to different collections.
type DraftRepository struct {
	collection *mongo.Collection
}

// NewDraftRepository binds a draft collection.
func NewDraftRepository(db *mongo.Database, collectionName string) *DraftRepository {
	return &DraftRepository{collection: db.Collection(collectionName)}
}

// FindLatestByUser returns the most recently updated draft for the user.
// The userId key should make duplicates impossible; sorting by lastUpdated
// keeps the read deterministic if state ever degrades.
func (r *DraftRepository) FindLatestByUser(ctx context.Context, userID string) (*drafts.Draft, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})
	var doc DraftDocument
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, drafts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	draft := mapDraftDocument(doc)
	return &draft, nil
}

// Upsert replaces the user's draft form state, creating the document on
// first save. Last write wins on concurrent saves for the same user.
func (r *DraftRepository) Upsert(ctx context.Context, userID string, formData map[string]any, currentStep int, now time.Time) (*drafts.Draft, error) {
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set": bson.M{
			"formData":    bson.M(formData),
			"currentStep": currentStep,
			"lastUpdated": now.UTC(),
		},
		"$setOnInsert": bson.M{
			"createdAt": now.UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc DraftDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, err
	}
	draft := mapDraftDocument(doc)
	return &draft, nil
}

// DeleteAllForUser removes every draft document for the user and returns
// the number removed.
func (r *DraftRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func mapDraftDocument(doc DraftDocument) drafts.Draft {
	return drafts.Draft{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID,
		FormData:    map[string]any(doc.FormData),
		CurrentStep: doc.CurrentStep,
		CreatedAt:   doc.CreatedAt,
		LastUpdated: doc.LastUpdated,
	}
}
