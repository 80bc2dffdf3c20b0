package mongodb

import (
	"context"
	"time"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PartRepository implements the repositories.PartRepository interface
type PartRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewPartRepository creates a new PartRepository
func NewPartRepository(db *mongo.Database) repositories.PartRepository {
	return &PartRepository{
		db:         db,
		collection: db.Collection("parts"),
	}
}

// Create mints a part document
func (r *PartRepository) Create(ctx context.Context, part *models.Part) error {
	part.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, part)
	if err != nil {
		return err
	}
	part.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByPartID finds a part by its ledger id
func (r *PartRepository) FindByPartID(ctx context.Context, partID uint64) (*models.Part, error) {
	var part models.Part
	err := r.collection.FindOne(ctx, bson.M{"partId": partID}).Decode(&part)
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// FindByOwner finds all parts held by an address
func (r *PartRepository) FindByOwner(ctx context.Context, owner string) ([]*models.Part, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var parts []*models.Part
	if err := cursor.All(ctx, &parts); err != nil {
		return nil, err
	}
	if parts == nil {
		parts = []*models.Part{}
	}
	return parts, nil
}

// Delete burns a part
func (r *PartRepository) Delete(ctx context.Context, partID uint64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"partId": partID})
	return err
}

// NextPartID allocates the next sequential part id
func (r *PartRepository) NextPartID(ctx context.Context) (uint64, error) {
	return nextSequence(ctx, r.db, "parts")
}
