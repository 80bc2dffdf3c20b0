package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"github.com/playparts/lotto-backend/internal/utils"
	"github.com/playparts/lotto-backend/pkg/permit"
)

// Compile-time check to ensure VaultServiceImpl implements Vault
var _ Vault = (*VaultServiceImpl)(nil)

// VaultServiceImpl holds the pooled balance per round and the coin accounts
// it settles against. Deposits require a permit signed by the owner naming
// this vault as spender; payouts are only reachable through the engine.
type VaultServiceImpl struct {
	coinRepo  repositories.CoinAccountRepository
	vaultRepo repositories.VaultBalanceRepository
	spender   common.Address // the vault's own identity inside permit digests
	now       func() time.Time
}

// NewVaultService creates a new VaultServiceImpl
func NewVaultService(coinRepo repositories.CoinAccountRepository, vaultRepo repositories.VaultBalanceRepository, spender common.Address) *VaultServiceImpl {
	return &VaultServiceImpl{
		coinRepo:  coinRepo,
		vaultRepo: vaultRepo,
		spender:   spender,
		now:       time.Now,
	}
}

func (v *VaultServiceImpl) account(ctx context.Context, owner common.Address) (*models.CoinAccount, error) {
	account, err := v.coinRepo.FindByAddress(ctx, utils.AddressKey(owner))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.CoinAccount{Address: utils.AddressKey(owner)}, nil
		}
		return nil, fmt.Errorf("failed to load coin account: %w", err)
	}
	return account, nil
}

func (v *VaultServiceImpl) pool(ctx context.Context, roundID uint64) (*models.VaultBalance, error) {
	balance, err := v.vaultRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.VaultBalance{RoundID: roundID}, nil
		}
		return nil, fmt.Errorf("failed to load round pool: %w", err)
	}
	return balance, nil
}

// DepositViaPermit verifies the permit against the owner's current nonce and
// the deadline, then debits the owner and credits the round pool.
func (v *VaultServiceImpl) DepositViaPermit(ctx context.Context, owner common.Address, roundID uint64, amount int64, deadline int64, permitSignature []byte) error {
	if deadline < v.now().Unix() {
		return ErrPermitExpired
	}
	account, err := v.account(ctx, owner)
	if err != nil {
		return err
	}

	ok, err := permit.Verify(owner, v.spender, amount, account.PermitNonce, deadline, permitSignature)
	if err != nil || !ok {
		slog.Warn("Rejected deposit permit", "owner", utils.AddressKey(owner), "roundId", roundID, "error", err)
		return ErrInvalidPermit
	}
	if account.Balance < amount {
		return ErrInsufficientCoin
	}

	account.Balance -= amount
	account.PermitNonce++
	if err := v.coinRepo.Upsert(ctx, account); err != nil {
		return fmt.Errorf("failed to debit coin account: %w", err)
	}

	balance, err := v.pool(ctx, roundID)
	if err != nil {
		return err
	}
	balance.Balance += amount
	if err := v.vaultRepo.Upsert(ctx, balance); err != nil {
		return fmt.Errorf("failed to credit round pool: %w", err)
	}

	slog.Info("Deposit accepted", "owner", utils.AddressKey(owner), "roundId", roundID, "amount", amount)
	return nil
}

// PayOut moves amount from the round pool to the recipient's coin account.
func (v *VaultServiceImpl) PayOut(ctx context.Context, roundID uint64, to common.Address, amount int64) error {
	if amount == 0 {
		return nil
	}
	balance, err := v.pool(ctx, roundID)
	if err != nil {
		return err
	}
	if balance.Balance < amount {
		return ErrVaultUnderflow
	}
	balance.Balance -= amount
	if err := v.vaultRepo.Upsert(ctx, balance); err != nil {
		return fmt.Errorf("failed to debit round pool: %w", err)
	}

	account, err := v.account(ctx, to)
	if err != nil {
		return err
	}
	account.Balance += amount
	if err := v.coinRepo.Upsert(ctx, account); err != nil {
		return fmt.Errorf("failed to credit coin account: %w", err)
	}

	slog.Info("Vault payout", "roundId", roundID, "to", utils.AddressKey(to), "amount", amount)
	return nil
}

// Carry moves amount from a closed round's pool into the next round. Anything
// left behind (rounding dust, unclaimed prize escrow) stays in the source pool.
func (v *VaultServiceImpl) Carry(ctx context.Context, fromRoundID, toRoundID uint64, amount int64) error {
	if amount == 0 {
		return nil
	}
	from, err := v.pool(ctx, fromRoundID)
	if err != nil {
		return err
	}
	if from.Balance < amount {
		return ErrVaultUnderflow
	}
	from.Balance -= amount
	if err := v.vaultRepo.Upsert(ctx, from); err != nil {
		return fmt.Errorf("failed to drain source pool: %w", err)
	}

	to, err := v.pool(ctx, toRoundID)
	if err != nil {
		return err
	}
	to.Balance += amount
	if err := v.vaultRepo.Upsert(ctx, to); err != nil {
		return fmt.Errorf("failed to fill destination pool: %w", err)
	}

	slog.Info("Pool carried forward", "fromRoundId", fromRoundID, "toRoundId", toRoundID, "amount", amount)
	return nil
}

// BalanceOf returns a round's pooled balance.
func (v *VaultServiceImpl) BalanceOf(ctx context.Context, roundID uint64) (int64, error) {
	balance, err := v.pool(ctx, roundID)
	if err != nil {
		return 0, err
	}
	return balance.Balance, nil
}

// CoinBalanceOf returns an account's coin balance.
func (v *VaultServiceImpl) CoinBalanceOf(ctx context.Context, owner common.Address) (int64, error) {
	account, err := v.account(ctx, owner)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// Credit adds externally sourced coins to an account.
func (v *VaultServiceImpl) Credit(ctx context.Context, owner common.Address, amount int64) error {
	account, err := v.account(ctx, owner)
	if err != nil {
		return err
	}
	account.Balance += amount
	if err := v.coinRepo.Upsert(ctx, account); err != nil {
		return fmt.Errorf("failed to credit coin account: %w", err)
	}
	slog.Info("Coin account credited", "owner", utils.AddressKey(owner), "amount", amount)
	return nil
}

// PermitNonce returns the owner's next expected permit nonce.
func (v *VaultServiceImpl) PermitNonce(ctx context.Context, owner common.Address) (uint64, error) {
	account, err := v.account(ctx, owner)
	if err != nil {
		return 0, err
	}
	return account.PermitNonce, nil
}
