package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/playparts/lotto-backend/internal/services"
	"github.com/playparts/lotto-backend/internal/utils"
)

// TicketHandler handles ticket ledger HTTP requests
type TicketHandler struct {
	ticketService services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// GetTicketByID handles GET /tickets/:id
func (h *TicketHandler) GetTicketByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}
	ticket, err := h.ticketService.GetTicketByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GetTicketsByOwner handles GET /tickets/owner/:address
func (h *TicketHandler) GetTicketsByOwner(c *gin.Context) {
	owner, err := utils.ParseAddress(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}
	tickets, err := h.ticketService.GetTicketsByOwner(c.Request.Context(), owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetTicketsByRound handles GET /tickets/round/:id
func (h *TicketHandler) GetTicketsByRound(c *gin.Context) {
	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round id"})
		return
	}
	tickets, err := h.ticketService.GetTicketsByRound(c.Request.Context(), roundID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// TransferTicketRequest names the recipient of a ticket transfer.
type TransferTicketRequest struct {
	To string `json:"to" binding:"required"`
}

// TransferTicket handles POST /tickets/:id/transfer
func (h *TicketHandler) TransferTicket(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}
	var request TransferTicketRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := utils.ParseAddress(request.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient address"})
		return
	}
	if err := h.ticketService.Transfer(c.Request.Context(), caller, id, to); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket transferred"})
}
