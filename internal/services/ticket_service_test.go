package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/utils"
)

func TestTicketTransfer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.startRound(t)
	ticket := env.buyTicket(t, env.buyerKey, "alpha")

	svc := NewTicketService(env.tickets)

	t.Run("only the owner may transfer", func(t *testing.T) {
		err := svc.Transfer(ctx, env.buyer2, ticket.TicketID, env.buyer2)
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		err := svc.Transfer(ctx, env.buyer, ticket.TicketID+99, env.buyer2)
		require.ErrorIs(t, err, ErrNotOwner)
	})

	require.NoError(t, svc.Transfer(ctx, env.buyer, ticket.TicketID, env.buyer2))

	moved, err := svc.GetTicketByID(ctx, ticket.TicketID)
	require.NoError(t, err)
	require.Equal(t, utils.AddressKey(env.buyer2), moved.Owner)
	// round binding and type-class travel with the ticket
	require.Equal(t, ticket.RoundID, moved.RoundID)
	require.Equal(t, ticket.TypeHash, moved.TypeHash)
}

func TestTransferredTicketClaimableByNewOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	roundID, seed := env.startRound(t)
	ticket := env.buyTicket(t, env.buyerKey, "alpha")
	closeSale(t, env, env.buyer)

	svc := NewTicketService(env.tickets)
	require.NoError(t, svc.Transfer(ctx, env.buyer, ticket.TicketID, env.buyer2))

	_, err := env.engine.SettleRound(ctx, env.admin, seed)
	require.NoError(t, err)

	_, err = env.engine.Claim(ctx, env.buyer, roundID, ticket.TicketID)
	require.ErrorIs(t, err, ErrNotOwner)

	amount, err := env.engine.Claim(ctx, env.buyer2, roundID, ticket.TicketID)
	require.NoError(t, err)
	require.Positive(t, amount)
}

func TestPartServiceMint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewPartService(env.parts)

	part, err := svc.Mint(ctx, env.buyer, 2, "gear")
	require.NoError(t, err)
	require.Equal(t, utils.AddressKey(env.buyer), part.Owner)
	require.Equal(t, 2, part.Category)

	_, err = svc.Mint(ctx, env.buyer, models.PartCategoryCount, "gear")
	require.ErrorIs(t, err, ErrInvalidParts)

	_, err = svc.Mint(ctx, env.buyer, -1, "gear")
	require.ErrorIs(t, err, ErrInvalidParts)

	_, err = svc.Mint(ctx, env.buyer, 0, "")
	require.ErrorIs(t, err, ErrInvalidParts)

	owned, err := svc.GetPartsByOwner(ctx, env.buyer)
	require.NoError(t, err)
	require.Len(t, owned, 1)
}
