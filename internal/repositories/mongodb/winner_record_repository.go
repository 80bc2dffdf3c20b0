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

// WinnerRecordRepository implements the repositories.WinnerRecordRepository interface
type WinnerRecordRepository struct {
	collection *mongo.Collection
}

// NewWinnerRecordRepository creates a new WinnerRecordRepository
func NewWinnerRecordRepository(db *mongo.Database) repositories.WinnerRecordRepository {
	return &WinnerRecordRepository{
		collection: db.Collection("winner_records"),
	}
}

// Create stores a round's winner record
func (r *WinnerRecordRepository) Create(ctx context.Context, record *models.WinnerRecord) error {
	record.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByRoundID finds a round's winner record
func (r *WinnerRecordRepository) FindByRoundID(ctx context.Context, roundID uint64) (*models.WinnerRecord, error) {
	var record models.WinnerRecord
	err := r.collection.FindOne(ctx, bson.M{"roundId": roundID}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
