package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/playparts/lotto-backend/internal/models"
)

// RemainTimeNotApplicable is the sentinel the remain-time queries return
// when the round is in the wrong status for the action. Callers must check
// for it instead of relying on an error.
const RemainTimeNotApplicable int64 = -1

// RoundService is the round lifecycle and settlement engine. The caller
// address is the on-ledger identity of whoever invokes the operation; every
// mutator re-validates status and timing against stored state before acting.
type RoundService interface {
	StartRound(ctx context.Context, caller common.Address, commitSignature []byte) (*models.Round, error)
	BuyTicket(ctx context.Context, caller common.Address, partIDs []uint64, permitDeadline int64, permitSignature []byte) (*models.Ticket, error)
	CloseTicketRound(ctx context.Context, caller common.Address) (*models.Round, error)
	SettleRound(ctx context.Context, caller common.Address, revealedSeed []byte) (*models.Round, error)
	SettleRoundForced(ctx context.Context, caller common.Address, roundID uint64, winningHash common.Hash) (*models.Round, error)
	Claim(ctx context.Context, caller common.Address, roundID, ticketID uint64) (int64, error)
	Refund(ctx context.Context, caller common.Address, roundID, ticketID uint64) (int64, error)
	EndRound(ctx context.Context, caller common.Address, roundID uint64) (*models.Round, error)

	CurrentRoundID(ctx context.Context) (uint64, error)
	GetRoundStatus(ctx context.Context, roundID uint64) (models.RoundStatus, error)
	RoundSettleInfo(ctx context.Context, roundID uint64) (*models.RoundSettleInfo, error)
	RoundWinnerInfo(ctx context.Context, roundID uint64) (*models.WinnerRecord, error)
	RemainTimeCloseTicketRound(ctx context.Context) (int64, error)
	RemainTimeRefund(ctx context.Context) (int64, error)
}

// Vault is the capability the engine holds over pooled funds. Only the
// engine is constructed with it, which preserves the single-writer invariant
// over deposits and payouts.
type Vault interface {
	// DepositViaPermit verifies a permit signature and moves amount from the
	// owner's coin account into the round's pool, consuming the permit nonce.
	DepositViaPermit(ctx context.Context, owner common.Address, roundID uint64, amount int64, deadline int64, permitSignature []byte) error
	// PayOut moves amount from the round's pool to the recipient's coin account.
	PayOut(ctx context.Context, roundID uint64, to common.Address, amount int64) error
	// Carry moves amount from a closed round's pool into the next round's
	// pool. Funds not carried stay with the source round.
	Carry(ctx context.Context, fromRoundID, toRoundID uint64, amount int64) error
	BalanceOf(ctx context.Context, roundID uint64) (int64, error)
	CoinBalanceOf(ctx context.Context, owner common.Address) (int64, error)
	// Credit adds externally sourced coins to an account. Operational glue:
	// the payment token itself lives outside this system.
	Credit(ctx context.Context, owner common.Address, amount int64) error
	PermitNonce(ctx context.Context, owner common.Address) (uint64, error)
}

// RoleStore answers role questions for on-ledger identities. It is passed
// into the engine at construction so tests can run isolated engines with
// different role configurations.
type RoleStore interface {
	IsAdmin(ctx context.Context, addr common.Address) (bool, error)
}

// TicketService exposes the ticket ledger's read and transfer surface.
// Mint and burn stay with the engine.
type TicketService interface {
	GetTicketByID(ctx context.Context, ticketID uint64) (*models.Ticket, error)
	GetTicketsByOwner(ctx context.Context, owner common.Address) ([]*models.Ticket, error)
	GetTicketsByRound(ctx context.Context, roundID uint64) ([]*models.Ticket, error)
	Transfer(ctx context.Context, caller common.Address, ticketID uint64, to common.Address) error
}

// PartService exposes the part ledger's read surface plus an operational
// mint used to seed the ledger (the minting subsystem proper is external).
type PartService interface {
	GetPartByID(ctx context.Context, partID uint64) (*models.Part, error)
	GetPartsByOwner(ctx context.Context, owner common.Address) ([]*models.Part, error)
	Mint(ctx context.Context, owner common.Address, category int, code string) (*models.Part, error)
}

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error) // returns JWT token
}
