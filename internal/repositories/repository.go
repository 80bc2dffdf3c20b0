package repositories

import (
	"context"

	"github.com/playparts/lotto-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundRepository defines the interface for round data operations
type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	FindByRoundID(ctx context.Context, roundID uint64) (*models.Round, error)
	FindLatest(ctx context.Context) (*models.Round, error) // highest roundId, nil+ErrNoDocuments when none
	Update(ctx context.Context, round *models.Round) error
	FindAll(ctx context.Context, page, limit int) ([]*models.Round, error)
}

// TicketRepository defines the interface for ticket ledger operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByTicketID(ctx context.Context, ticketID uint64) (*models.Ticket, error)
	FindByOwner(ctx context.Context, owner string) ([]*models.Ticket, error)
	FindByRoundID(ctx context.Context, roundID uint64) ([]*models.Ticket, error)
	CountByOwnerAndRound(ctx context.Context, owner string, roundID uint64) (int64, error)
	CountByRoundAndTypeHash(ctx context.Context, roundID uint64, typeHash string) (int64, error)
	DistinctTypeHashes(ctx context.Context, roundID uint64) ([]string, error)
	UpdateOwner(ctx context.Context, ticketID uint64, newOwner string) error
	Delete(ctx context.Context, ticketID uint64) error // burn
	NextTicketID(ctx context.Context) (uint64, error)
}

// PartRepository defines the interface for part ledger operations
type PartRepository interface {
	Create(ctx context.Context, part *models.Part) error
	FindByPartID(ctx context.Context, partID uint64) (*models.Part, error)
	FindByOwner(ctx context.Context, owner string) ([]*models.Part, error)
	Delete(ctx context.Context, partID uint64) error // burn
	NextPartID(ctx context.Context) (uint64, error)
}

// CommitmentRepository defines the interface for RNG commitment operations
type CommitmentRepository interface {
	Create(ctx context.Context, commitment *models.RngCommitment) error
	FindByRoundID(ctx context.Context, roundID uint64) (*models.RngCommitment, error)
	Update(ctx context.Context, commitment *models.RngCommitment) error
}

// WinnerRecordRepository defines the interface for winner record operations
type WinnerRecordRepository interface {
	Create(ctx context.Context, record *models.WinnerRecord) error
	FindByRoundID(ctx context.Context, roundID uint64) (*models.WinnerRecord, error)
}

// CoinAccountRepository defines the interface for payment-coin account operations
type CoinAccountRepository interface {
	FindByAddress(ctx context.Context, address string) (*models.CoinAccount, error)
	Upsert(ctx context.Context, account *models.CoinAccount) error
}

// VaultBalanceRepository defines the interface for per-round pooled balances
type VaultBalanceRepository interface {
	FindByRoundID(ctx context.Context, roundID uint64) (*models.VaultBalance, error)
	Upsert(ctx context.Context, balance *models.VaultBalance) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByWalletAddress(ctx context.Context, address string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	Update(ctx context.Context, adminUser *models.AdminUser) error
}
