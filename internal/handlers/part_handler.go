package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/playparts/lotto-backend/internal/services"
	"github.com/playparts/lotto-backend/internal/utils"
)

// PartHandler handles part ledger HTTP requests
type PartHandler struct {
	partService services.PartService
}

// NewPartHandler creates a new PartHandler
func NewPartHandler(partService services.PartService) *PartHandler {
	return &PartHandler{partService: partService}
}

// GetPartByID handles GET /parts/:id
func (h *PartHandler) GetPartByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part id"})
		return
	}
	part, err := h.partService.GetPartByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// GetPartsByOwner handles GET /parts/owner/:address
func (h *PartHandler) GetPartsByOwner(c *gin.Context) {
	owner, err := utils.ParseAddress(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}
	parts, err := h.partService.GetPartsByOwner(c.Request.Context(), owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

// MintPartRequest describes a part to mint into an owner's ledger.
type MintPartRequest struct {
	Owner    string `json:"owner" binding:"required"`
	Category *int   `json:"category" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// MintPart handles POST /parts/mint (admin only)
func (h *PartHandler) MintPart(c *gin.Context) {
	var request MintPartRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner, err := utils.ParseAddress(request.Owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner address"})
		return
	}
	part, err := h.partService.Mint(c.Request.Context(), owner, *request.Category, request.Code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}
