package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/playparts/lotto-backend/internal/services"
	"github.com/playparts/lotto-backend/internal/utils"
)

// VaultHandler handles payment vault HTTP requests
type VaultHandler struct {
	vault services.Vault
}

// NewVaultHandler creates a new VaultHandler
func NewVaultHandler(vault services.Vault) *VaultHandler {
	return &VaultHandler{vault: vault}
}

// GetRoundBalance handles GET /vault/rounds/:id
func (h *VaultHandler) GetRoundBalance(c *gin.Context) {
	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round id"})
		return
	}
	balance, err := h.vault.BalanceOf(c.Request.Context(), roundID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundId": roundID, "balance": balance})
}

// GetAccount handles GET /vault/accounts/:address
func (h *VaultHandler) GetAccount(c *gin.Context) {
	owner, err := utils.ParseAddress(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}
	balance, err := h.vault.CoinBalanceOf(c.Request.Context(), owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	nonce, err := h.vault.PermitNonce(c.Request.Context(), owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": utils.AddressKey(owner), "balance": balance, "permitNonce": nonce})
}

// CreditRequest describes an external coin credit.
type CreditRequest struct {
	Owner  string `json:"owner" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

// Credit handles POST /vault/credit (admin only)
func (h *VaultHandler) Credit(c *gin.Context) {
	var request CreditRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner, err := utils.ParseAddress(request.Owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner address"})
		return
	}
	if err := h.vault.Credit(c.Request.Context(), owner, request.Amount); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account credited"})
}
