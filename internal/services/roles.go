package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/playparts/lotto-backend/internal/repositories"
	"github.com/playparts/lotto-backend/internal/utils"
)

// Compile-time check to ensure AdminRoleStore implements RoleStore
var _ RoleStore = (*AdminRoleStore)(nil)

// AdminRoleStore answers admin checks against the admin_users collection:
// an address is an admin when an admin-role account claims it as wallet.
type AdminRoleStore struct {
	adminRepo repositories.AdminUserRepository
}

// NewAdminRoleStore creates a new AdminRoleStore
func NewAdminRoleStore(adminRepo repositories.AdminUserRepository) *AdminRoleStore {
	return &AdminRoleStore{adminRepo: adminRepo}
}

// IsAdmin reports whether the address belongs to an admin account.
func (s *AdminRoleStore) IsAdmin(ctx context.Context, addr common.Address) (bool, error) {
	user, err := s.adminRepo.FindByWalletAddress(ctx, utils.AddressKey(addr))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up admin role: %w", err)
	}
	return user.Role == "admin", nil
}
