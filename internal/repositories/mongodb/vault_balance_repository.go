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

// VaultBalanceRepository implements the repositories.VaultBalanceRepository interface
type VaultBalanceRepository struct {
	collection *mongo.Collection
}

// NewVaultBalanceRepository creates a new VaultBalanceRepository
func NewVaultBalanceRepository(db *mongo.Database) repositories.VaultBalanceRepository {
	return &VaultBalanceRepository{
		collection: db.Collection("vault_balances"),
	}
}

// FindByRoundID finds a round's pooled balance
func (r *VaultBalanceRepository) FindByRoundID(ctx context.Context, roundID uint64) (*models.VaultBalance, error) {
	var balance models.VaultBalance
	err := r.collection.FindOne(ctx, bson.M{"roundId": roundID}).Decode(&balance)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// Upsert writes a round's pooled balance
func (r *VaultBalanceRepository) Upsert(ctx context.Context, balance *models.VaultBalance) error {
	balance.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"balance":   balance.Balance,
			"updatedAt": balance.UpdatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"roundId": balance.RoundID}, update, opts)
	return err
}
