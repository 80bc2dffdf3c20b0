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

// CommitmentRepository implements the repositories.CommitmentRepository interface
type CommitmentRepository struct {
	collection *mongo.Collection
}

// NewCommitmentRepository creates a new CommitmentRepository
func NewCommitmentRepository(db *mongo.Database) repositories.CommitmentRepository {
	return &CommitmentRepository{
		collection: db.Collection("rng_commitments"),
	}
}

// Create stores a round's commitment
func (r *CommitmentRepository) Create(ctx context.Context, commitment *models.RngCommitment) error {
	commitment.CreatedAt = time.Now()
	commitment.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, commitment)
	if err != nil {
		return err
	}
	commitment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByRoundID finds a round's commitment
func (r *CommitmentRepository) FindByRoundID(ctx context.Context, roundID uint64) (*models.RngCommitment, error) {
	var commitment models.RngCommitment
	err := r.collection.FindOne(ctx, bson.M{"roundId": roundID}).Decode(&commitment)
	if err != nil {
		return nil, err
	}
	return &commitment, nil
}

// Update updates a round's commitment
func (r *CommitmentRepository) Update(ctx context.Context, commitment *models.RngCommitment) error {
	commitment.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"roundId": commitment.RoundID}, commitment)
	return err
}
