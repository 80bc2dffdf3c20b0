package services

import (
	"context"
	"testing"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/playparts/lotto-backend/pkg/permit"
)

func TestDepositViaPermit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.vault.Credit(ctx, env.buyer, 500))

	deadline := env.clock.Add(time.Hour).Unix()
	sig, err := permit.Sign(env.buyer, env.vaultAddr, 200, 0, deadline, env.buyerKey)
	require.NoError(t, err)

	require.NoError(t, env.vault.DepositViaPermit(ctx, env.buyer, 1, 200, deadline, sig))

	balance, err := env.vault.CoinBalanceOf(ctx, env.buyer)
	require.NoError(t, err)
	require.Equal(t, int64(300), balance)

	pool, err := env.vault.BalanceOf(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(200), pool)

	nonce, err := env.vault.PermitNonce(ctx, env.buyer)
	require.NoError(t, err)
	require.Equal(t, uint64(1), nonce)

	t.Run("replay is rejected", func(t *testing.T) {
		err := env.vault.DepositViaPermit(ctx, env.buyer, 1, 200, deadline, sig)
		require.ErrorIs(t, err, ErrInvalidPermit)
	})
}

func TestDepositViaPermitRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.vault.Credit(ctx, env.buyer, 100))

	t.Run("expired deadline", func(t *testing.T) {
		deadline := env.clock.Add(-time.Second).Unix()
		sig, err := permit.Sign(env.buyer, env.vaultAddr, 50, 0, deadline, env.buyerKey)
		require.NoError(t, err)
		err = env.vault.DepositViaPermit(ctx, env.buyer, 1, 50, deadline, sig)
		require.ErrorIs(t, err, ErrPermitExpired)
	})

	deadline := env.clock.Add(time.Hour).Unix()

	t.Run("signed by someone else", func(t *testing.T) {
		sig, err := permit.Sign(env.buyer, env.vaultAddr, 50, 0, deadline, env.buyer2Key)
		require.NoError(t, err)
		err = env.vault.DepositViaPermit(ctx, env.buyer, 1, 50, deadline, sig)
		require.ErrorIs(t, err, ErrInvalidPermit)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		sig, err := permit.Sign(env.buyer, env.vaultAddr, 50, 0, deadline, env.buyerKey)
		require.NoError(t, err)
		err = env.vault.DepositViaPermit(ctx, env.buyer, 1, 60, deadline, sig)
		require.ErrorIs(t, err, ErrInvalidPermit)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		sig, err := permit.Sign(env.buyer, env.vaultAddr, 200, 0, deadline, env.buyerKey)
		require.NoError(t, err)
		err = env.vault.DepositViaPermit(ctx, env.buyer, 1, 200, deadline, sig)
		require.ErrorIs(t, err, ErrInsufficientCoin)
	})

	// none of the rejected permits consumed the nonce
	nonce, err := env.vault.PermitNonce(ctx, env.buyer)
	require.NoError(t, err)
	require.Zero(t, nonce)
}

func TestPayOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.vault.Credit(ctx, env.buyer, 100))

	deadline := env.clock.Add(time.Hour).Unix()
	sig, err := permit.Sign(env.buyer, env.vaultAddr, 100, 0, deadline, env.buyerKey)
	require.NoError(t, err)
	require.NoError(t, env.vault.DepositViaPermit(ctx, env.buyer, 1, 100, deadline, sig))

	t.Run("underflow", func(t *testing.T) {
		err := env.vault.PayOut(ctx, 1, env.buyer2, 101)
		require.ErrorIs(t, err, ErrVaultUnderflow)
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		require.NoError(t, env.vault.PayOut(ctx, 1, env.buyer2, 0))
	})

	require.NoError(t, env.vault.PayOut(ctx, 1, env.buyer2, 60))
	balance, err := env.vault.CoinBalanceOf(ctx, env.buyer2)
	require.NoError(t, err)
	require.Equal(t, int64(60), balance)

	pool, err := env.vault.BalanceOf(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(40), pool)
}

func TestCarryMovesOnlyRequestedAmount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.vault.Credit(ctx, env.buyer, 100))

	deadline := env.clock.Add(time.Hour).Unix()
	sig, err := permit.Sign(env.buyer, env.vaultAddr, 100, 0, deadline, env.buyerKey)
	require.NoError(t, err)
	require.NoError(t, env.vault.DepositViaPermit(ctx, env.buyer, 1, 100, deadline, sig))

	t.Run("more than the pool holds", func(t *testing.T) {
		err := env.vault.Carry(ctx, 1, 2, 101)
		require.ErrorIs(t, err, ErrVaultUnderflow)
	})

	require.NoError(t, env.vault.Carry(ctx, 1, 2, 70))

	// unclaimed escrow stays with the source round
	from, err := env.vault.BalanceOf(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(30), from)

	to, err := env.vault.BalanceOf(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, int64(70), to)
}

func TestVaultSpenderIdentityMatters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.vault.Credit(ctx, env.buyer, 100))

	// a permit naming a different spender must not be accepted by this vault
	otherSpender := ethcrypto.PubkeyToAddress(env.buyer2Key.PublicKey)
	deadline := env.clock.Add(time.Hour).Unix()
	sig, err := permit.Sign(env.buyer, otherSpender, 100, 0, deadline, env.buyerKey)
	require.NoError(t, err)
	err = env.vault.DepositViaPermit(ctx, env.buyer, 1, 100, deadline, sig)
	require.ErrorIs(t, err, ErrInvalidPermit)
}
