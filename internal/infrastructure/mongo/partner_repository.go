package mongo

import (
	"context"
	"errors"

	"github.com/ncd-navigator/resource-mobilization/api/internal/partner/domain"
	surveydomain "github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PartnerMappingRepository handles submitted partner-mapping records.
type PartnerMappingRepository struct {
	mappings *mongo.Collection
}

// NewPartnerMappingRepository binds the partner_mappings collection.
func NewPartnerMappingRepository(db *mongo.Database, collectionName string) *PartnerMappingRepository {
	return &PartnerMappingRepository{mappings: db.Collection(collectionName)}
}

// Insert persists one immutable mapping record and reflects the generated
// identifier back onto the domain entity.
func (r *PartnerMappingRepository) Insert(ctx context.Context, record *domain.MappingRecord) error {
	if record == nil {
		return errors.New("mapping payload is nil")
	}
	doc := mapMappingToDocument(record)
	doc.ID = primitive.NewObjectID()
	if _, err := r.mappings.InsertOne(ctx, doc); err != nil {
		return err
	}
	record.ID = doc.ID.Hex()
	return nil
}

// FindByUser returns the user's submitted mapping records, newest first.
func (r *PartnerMappingRepository) FindByUser(ctx context.Context, userID string) ([]domain.MappingRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.mappings.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]domain.MappingRecord, 0)
	for cursor.Next(ctx) {
		var doc PartnerMappingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, mapMappingDocument(doc))
	}
	return records, cursor.Err()
}

func mapMappingToDocument(record *domain.MappingRecord) PartnerMappingDocument {
	entries := make([]PartnerEntryDocument, 0, len(record.Entries))
	for _, entry := range record.Entries {
		entries = append(entries, PartnerEntryDocument{
			ID:           entry.ID,
			Year:         entry.Year.Int(),
			WorkNature:   entry.WorkNature.String(),
			Organization: entry.Organization,
			ProjectName:  entry.ProjectName,
			Region:       entry.Region.String(),
			District:     entry.District,
			Disease:      entry.Disease.String(),
			PartnerName:  entry.PartnerName,
			PartnerRole:  entry.PartnerRole.String(),
		})
	}

	return PartnerMappingDocument{
		UserID:    record.UserID,
		Data:      entries,
		Status:    record.Status,
		CreatedAt: record.CreatedAt.UTC(),
		UpdatedAt: record.UpdatedAt.UTC(),
	}
}

func mapMappingDocument(doc PartnerMappingDocument) domain.MappingRecord {
	entries := make([]domain.Entry, 0, len(doc.Data))
	for _, entry := range doc.Data {
		entries = append(entries, domain.Entry{
			ID:           entry.ID,
			Year:         domain.Year(entry.Year),
			WorkNature:   domain.WorkNature(entry.WorkNature),
			Organization: entry.Organization,
			ProjectName:  entry.ProjectName,
			Region:       surveydomain.Region(entry.Region),
			District:     entry.District,
			Disease:      surveydomain.Disease(entry.Disease),
			PartnerName:  entry.PartnerName,
			PartnerRole:  domain.PartnerRole(entry.PartnerRole),
		})
	}

	return domain.MappingRecord{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		Entries:   entries,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
