package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the structure for registration requests
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role" binding:"required,oneof=admin operator"`
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// AdminUser represents a backend operator account. The wallet address links
// the account to the on-ledger identity the engine checks roles against.
type AdminUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash, omitted from JSON
	Role          string             `bson:"role" json:"role"`  // "admin" or "operator"
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"` // lowercase 0x address
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
