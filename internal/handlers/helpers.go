package handlers

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/playparts/lotto-backend/internal/services"
)

// callerAddress extracts the authenticated caller's wallet address set by
// the JWT middleware.
func callerAddress(c *gin.Context) (common.Address, bool) {
	raw, ok := c.Get("userWallet")
	if !ok {
		return common.Address{}, false
	}
	hex, ok := raw.(string)
	if !ok || !common.IsHexAddress(hex) {
		return common.Address{}, false
	}
	return common.HexToAddress(hex), true
}

// abortWithError maps service errors onto HTTP status codes and aborts the
// request with the error message verbatim.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotAdmin),
		errors.Is(err, services.ErrNotPermitted),
		errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrNotPartOwner),
		errors.Is(err, services.ErrNotWinner):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrLastRoundNotEnded),
		errors.Is(err, services.ErrRoundNotProceeding),
		errors.Is(err, services.ErrRoundNotDrawing),
		errors.Is(err, services.ErrRoundNotClaiming),
		errors.Is(err, services.ErrRoundNotStarted),
		errors.Is(err, services.ErrRoundAlreadyEnded),
		errors.Is(err, services.ErrSaleNotOver),
		errors.Is(err, services.ErrRefundNotAvailable),
		errors.Is(err, services.ErrEndTooEarly):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidParts),
		errors.Is(err, services.ErrInvalidReveal),
		errors.Is(err, services.ErrInvalidPermit),
		errors.Is(err, services.ErrPermitExpired),
		errors.Is(err, services.ErrInsufficientCoin),
		errors.Is(err, services.ErrVaultUnderflow):
		status = http.StatusBadRequest
	case errors.Is(err, mongo.ErrNoDocuments):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
