package services

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/playparts/lotto-backend/internal/config"
	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/utils"
)

func newAuthService() (*AuthServiceImpl, *fakeAdminRepo) {
	repo := newFakeAdminRepo()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 24
	return NewAuthService(repo, cfg), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.RegisterRequest{
		Email:         "ops@playparts.example",
		Password:      "correct horse battery",
		Role:          "admin",
		WalletAddress: "0x00000000000000000000000000000000000000ee",
	})
	require.NoError(t, err)
	require.Empty(t, user.Password)
	require.Equal(t, "0x00000000000000000000000000000000000000ee", user.WalletAddress)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, &models.RegisterRequest{
			Email:         "ops@playparts.example",
			Password:      "another password",
			Role:          "operator",
			WalletAddress: "0x00000000000000000000000000000000000000ef",
		})
		require.Error(t, err)
	})

	t.Run("bad wallet address", func(t *testing.T) {
		_, err := svc.Register(ctx, &models.RegisterRequest{
			Email:         "ops2@playparts.example",
			Password:      "another password",
			Role:          "operator",
			WalletAddress: "not-an-address",
		})
		require.Error(t, err)
	})

	token, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "ops@playparts.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{
			Email:    "ops@playparts.example",
			Password: "wrong",
		})
		require.Error(t, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{
			Email:    "ghost@playparts.example",
			Password: "whatever",
		})
		require.Error(t, err)
	})
}

func TestAdminRoleStore(t *testing.T) {
	svc, repo := newAuthService()
	ctx := context.Background()

	adminWallet := "0x00000000000000000000000000000000000001aa"
	operatorWallet := "0x00000000000000000000000000000000000001bb"
	_, err := svc.Register(ctx, &models.RegisterRequest{
		Email: "admin@playparts.example", Password: "password-one", Role: "admin", WalletAddress: adminWallet,
	})
	require.NoError(t, err)
	_, err = svc.Register(ctx, &models.RegisterRequest{
		Email: "operator@playparts.example", Password: "password-two", Role: "operator", WalletAddress: operatorWallet,
	})
	require.NoError(t, err)

	roles := NewAdminRoleStore(repo)

	isAdmin, err := roles.IsAdmin(ctx, mustAddr(t, adminWallet))
	require.NoError(t, err)
	require.True(t, isAdmin)

	isAdmin, err = roles.IsAdmin(ctx, mustAddr(t, operatorWallet))
	require.NoError(t, err)
	require.False(t, isAdmin)

	isAdmin, err = roles.IsAdmin(ctx, mustAddr(t, "0x00000000000000000000000000000000000001cc"))
	require.NoError(t, err)
	require.False(t, isAdmin)
}

func mustAddr(t *testing.T, s string) common.Address {
	t.Helper()
	addr, err := utils.ParseAddress(s)
	require.NoError(t, err)
	return addr
}
