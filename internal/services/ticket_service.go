package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"github.com/playparts/lotto-backend/internal/utils"
)

// Compile-time check to ensure TicketServiceImpl implements TicketService
var _ TicketService = (*TicketServiceImpl)(nil)

// TicketServiceImpl exposes the ticket ledger's reads and owner transfers.
// Minting and burning are reserved to the engine.
type TicketServiceImpl struct {
	ticketRepo repositories.TicketRepository
}

// NewTicketService creates a new TicketServiceImpl
func NewTicketService(ticketRepo repositories.TicketRepository) *TicketServiceImpl {
	return &TicketServiceImpl{ticketRepo: ticketRepo}
}

// GetTicketByID returns a ticket by its ledger id.
func (s *TicketServiceImpl) GetTicketByID(ctx context.Context, ticketID uint64) (*models.Ticket, error) {
	return s.ticketRepo.FindByTicketID(ctx, ticketID)
}

// GetTicketsByOwner returns all tickets held by an address.
func (s *TicketServiceImpl) GetTicketsByOwner(ctx context.Context, owner common.Address) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByOwner(ctx, utils.AddressKey(owner))
}

// GetTicketsByRound returns all live tickets minted in a round.
func (s *TicketServiceImpl) GetTicketsByRound(ctx context.Context, roundID uint64) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByRoundID(ctx, roundID)
}

// Transfer moves ticket ownership. The round binding and type-class travel
// with the ticket unchanged.
func (s *TicketServiceImpl) Transfer(ctx context.Context, caller common.Address, ticketID uint64, to common.Address) error {
	ticket, err := s.ticketRepo.FindByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotOwner
		}
		return fmt.Errorf("failed to load ticket %d: %w", ticketID, err)
	}
	if ticket.Owner != utils.AddressKey(caller) {
		return ErrNotOwner
	}
	if err := s.ticketRepo.UpdateOwner(ctx, ticketID, utils.AddressKey(to)); err != nil {
		return fmt.Errorf("failed to transfer ticket %d: %w", ticketID, err)
	}
	slog.Info("Ticket transferred", "ticketId", ticketID, "from", ticket.Owner, "to", utils.AddressKey(to))
	return nil
}
