package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"

	"github.com/playparts/lotto-backend/internal/config"
)

// GenerateJWT generates a JWT token for an authenticated admin user
func GenerateJWT(userID, email, role, walletAddress string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":    userID,
		"email":  email,
		"role":   role,
		"wallet": walletAddress,
		"exp":    time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT validates a JWT token and returns its claims
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// AddressKey normalizes an address to the lowercase hex form used as the
// owner key in stored documents.
func AddressKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// ParseAddress parses a 0x-prefixed hex address from user input.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.New("invalid address")
	}
	return common.HexToAddress(s), nil
}
