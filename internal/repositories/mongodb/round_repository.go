package mongodb

import (
	"context"
	"time"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoundRepository implements the repositories.RoundRepository interface
type RoundRepository struct {
	collection *mongo.Collection
}

// NewRoundRepository creates a new RoundRepository
func NewRoundRepository(db *mongo.Database) repositories.RoundRepository {
	return &RoundRepository{
		collection: db.Collection("rounds"),
	}
}

// Create creates a new round
func (r *RoundRepository) Create(ctx context.Context, round *models.Round) error {
	round.CreatedAt = time.Now()
	round.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, round)
	if err != nil {
		return err
	}
	round.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByRoundID finds a round by its sequential id
func (r *RoundRepository) FindByRoundID(ctx context.Context, roundID uint64) (*models.Round, error) {
	var round models.Round
	err := r.collection.FindOne(ctx, bson.M{"roundId": roundID}).Decode(&round)
	if err != nil {
		return nil, err // Returns mongo.ErrNoDocuments if not found
	}
	return &round, nil
}

// FindLatest finds the round with the highest roundId
func (r *RoundRepository) FindLatest(ctx context.Context) (*models.Round, error) {
	opts := options.FindOne().SetSort(bson.M{"roundId": -1})
	var round models.Round
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&round)
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// Update updates a round
func (r *RoundRepository) Update(ctx context.Context, round *models.Round) error {
	round.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"roundId": round.RoundID}, round)
	return err
}

// FindAll finds rounds, newest first, paginated
func (r *RoundRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Round, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"roundId": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rounds []*models.Round
	if err := cursor.All(ctx, &rounds); err != nil {
		return nil, err
	}
	if rounds == nil {
		rounds = []*models.Round{}
	}
	return rounds, nil
}
