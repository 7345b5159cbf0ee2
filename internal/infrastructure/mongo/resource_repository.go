package mongo

import (
	"context"
	"errors"
	"strings"

	resourceapp "github.com/ncd-navigator/resource-mobilization/api/internal/resource/application"
	resourcedomain "github.com/ncd-navigator/resource-mobilization/api/internal/resource/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResourceRepository persists uploaded-file metadata.
type ResourceRepository struct {
	resources *mongo.Collection
}

// NewResourceRepository binds the resources collection.
func NewResourceRepository(db *mongo.Database, collectionName string) *ResourceRepository {
	return &ResourceRepository{resources: db.Collection(collectionName)}
}

func (r *ResourceRepository) List(ctx context.Context, category string) ([]resourcedomain.Resource, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.resources.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	resources := make([]resourcedomain.Resource, 0)
	for cursor.Next(ctx) {
		var doc ResourceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		resources = append(resources, mapResourceDocument(doc))
	}
	return resources, cursor.Err()
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*resourcedomain.Resource, error) {
	var doc ResourceDocument
	err := r.resources.FindOne(ctx, bson.M{"_id": strings.TrimSpace(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, resourceapp.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	resource := mapResourceDocument(doc)
	return &resource, nil
}

func (r *ResourceRepository) Insert(ctx context.Context, resource *resourcedomain.Resource) error {
	_, err := r.resources.InsertOne(ctx, mapResourceToDocument(resource))
	return err
}

func (r *ResourceRepository) Update(ctx context.Context, resource *resourcedomain.Resource) error {
	doc := mapResourceToDocument(resource)
	update := bson.M{"$set": bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"category":    doc.Category,
		"fileName":    doc.FileName,
		"storedPath":  doc.StoredPath,
		"contentType": doc.ContentType,
		"sizeBytes":   doc.SizeBytes,
		"updatedAt":   doc.UpdatedAt,
	}}
	result, err := r.resources.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return resourceapp.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.resources.DeleteOne(ctx, bson.M{"_id": strings.TrimSpace(id)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return resourceapp.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) IncrementDownloads(ctx context.Context, id string) error {
	_, err := r.resources.UpdateByID(ctx, strings.TrimSpace(id), bson.M{"$inc": bson.M{"downloadCount": 1}})
	return err
}

func mapResourceDocument(doc ResourceDocument) resourcedomain.Resource {
	return resourcedomain.Resource{
		ID:            doc.ID,
		Title:         doc.Title,
		Description:   doc.Description,
		Category:      doc.Category,
		FileName:      doc.FileName,
		StoredPath:    doc.StoredPath,
		ContentType:   doc.ContentType,
		SizeBytes:     doc.SizeBytes,
		DownloadCount: doc.DownloadCount,
		UploadedBy:    doc.UploadedBy,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func mapResourceToDocument(resource *resourcedomain.Resource) ResourceDocument {
	return ResourceDocument{
		ID:            resource.ID,
		Title:         resource.Title,
		Description:   resource.Description,
		Category:      resource.Category,
		FileName:      resource.FileName,
		StoredPath:    resource.StoredPath,
		ContentType:   resource.ContentType,
		SizeBytes:     resource.SizeBytes,
		DownloadCount: resource.DownloadCount,
		UploadedBy:    resource.UploadedBy,
		CreatedAt:     resource.CreatedAt.UTC(),
		UpdatedAt:     resource.UpdatedAt.UTC(),
	}
}
