package mongodb

import (
	"context"
	"time"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CoinAccountRepository implements the repositories.CoinAccountRepository interface
type CoinAccountRepository struct {
	collection *mongo.Collection
}

// NewCoinAccountRepository creates a new CoinAccountRepository
func NewCoinAccountRepository(db *mongo.Database) repositories.CoinAccountRepository {
	return &CoinAccountRepository{
		collection: db.Collection("coin_accounts"),
	}
}

// FindByAddress finds an account by address
func (r *CoinAccountRepository) FindByAddress(ctx context.Context, address string) (*models.CoinAccount, error) {
	var account models.CoinAccount
	err := r.collection.FindOne(ctx, bson.M{"address": address}).Decode(&account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Upsert writes an account keyed by address
func (r *CoinAccountRepository) Upsert(ctx context.Context, account *models.CoinAccount) error {
	account.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"balance":     account.Balance,
			"permitNonce": account.PermitNonce,
			"updatedAt":   account.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"address": account.Address}, update, opts)
	return err
}
