package services

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/slog"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"github.com/playparts/lotto-backend/internal/utils"
)

// Compile-time check to ensure PartServiceImpl implements PartService
var _ PartService = (*PartServiceImpl)(nil)

// PartServiceImpl exposes the part ledger. The real minting and
// rate-limiting subsystem lives outside this service; Mint here only seeds
// the ledger the engine consumes.
type PartServiceImpl struct {
	partRepo repositories.PartRepository
}

// NewPartService creates a new PartServiceImpl
func NewPartService(partRepo repositories.PartRepository) *PartServiceImpl {
	return &PartServiceImpl{partRepo: partRepo}
}

// GetPartByID returns a part by its ledger id.
func (s *PartServiceImpl) GetPartByID(ctx context.Context, partID uint64) (*models.Part, error) {
	return s.partRepo.FindByPartID(ctx, partID)
}

// GetPartsByOwner returns all parts held by an address.
func (s *PartServiceImpl) GetPartsByOwner(ctx context.Context, owner common.Address) ([]*models.Part, error) {
	return s.partRepo.FindByOwner(ctx, utils.AddressKey(owner))
}

// Mint creates a part for an owner.
func (s *PartServiceImpl) Mint(ctx context.Context, owner common.Address, category int, code string) (*models.Part, error) {
	if category < 0 || category >= models.PartCategoryCount {
		return nil, ErrInvalidParts
	}
	if code == "" {
		return nil, ErrInvalidParts
	}
	partID, err := s.partRepo.NextPartID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate part id: %w", err)
	}
	part := &models.Part{
		PartID:   partID,
		Owner:    utils.AddressKey(owner),
		Category: category,
		Code:     code,
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to mint part: %w", err)
	}
	slog.Info("Part minted", "partId", partID, "owner", part.Owner, "category", category, "code", code)
	return part, nil
}
