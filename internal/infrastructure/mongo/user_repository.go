package mongo

import (
	"context"
	"errors"
	"strings"

	userapp "github.com/ncd-navigator/resource-mobilization/api/internal/user/application"
	userdomain "github.com/ncd-navigator/resource-mobilization/api/internal/user/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository persists account records.
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository binds the users collection.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{users: db.Collection(collectionName)}
}

func (r *UserRepository) List(ctx context.Context) ([]userdomain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]userdomain.User, 0)
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, mapUserDocument(doc))
	}
	return users, cursor.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, userapp.ErrNotFound
	}
	var doc UserDocument
	err = r.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, userapp.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var doc UserDocument
	err := r.users.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, userapp.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *userdomain.User) error {
	doc := mapUserToDocument(user)
	doc.ID = primitive.NewObjectID()
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *userdomain.User) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(user.ID))
	if err != nil {
		return userapp.ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"displayName":  user.DisplayName,
		"organisation": user.Organisation,
		"role":         user.Role,
		"passwordHash": user.PasswordHash,
		"updatedAt":    user.UpdatedAt,
	}}
	result, err := r.users.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return userapp.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return userapp.ErrNotFound
	}
	result, err := r.users.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return userapp.ErrNotFound
	}
	return nil
}

func mapUserDocument(doc UserDocument) userdomain.User {
	return userdomain.User{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		DisplayName:  doc.DisplayName,
		Organisation: doc.Organisation,
		Role:         doc.Role,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func mapUserToDocument(user *userdomain.User) UserDocument {
	return UserDocument{
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Organisation: user.Organisation,
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}
