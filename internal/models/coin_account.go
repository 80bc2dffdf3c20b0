package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoinAccount is the payment-token ledger entry for one address. The vault
// debits it on permit deposits and credits it on payouts and refunds.
// PermitNonce increments on every accepted permit so a signature cannot be
// replayed.
type CoinAccount struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Address     string             `bson:"address" json:"address"` // lowercase 0x address
	Balance     int64              `bson:"balance" json:"balance"`
	PermitNonce uint64             `bson:"permitNonce" json:"permitNonce"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VaultBalance is the pooled escrow balance the vault holds for one round.
type VaultBalance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RoundID   uint64             `bson:"roundId" json:"roundId"`
	Balance   int64              `bson:"balance" json:"balance"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
