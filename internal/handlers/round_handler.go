package handlers

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"

	"github.com/playparts/lotto-backend/internal/services"
)

// RoundHandler handles round lifecycle HTTP requests
type RoundHandler struct {
	roundService services.RoundService
}

// NewRoundHandler creates a new RoundHandler
func NewRoundHandler(roundService services.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

func parseRoundID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round id"})
		return 0, false
	}
	return id, true
}

// StartRoundRequest carries the committer's signature over {roundId, seed}
// for the round being opened.
type StartRoundRequest struct {
	CommitSignature string `json:"commitSignature" binding:"required"`
}

// StartRound handles POST /rounds/start
func (h *RoundHandler) StartRound(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	var request StartRoundRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sig, err := hexutil.Decode(request.CommitSignature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid commit signature encoding"})
		return
	}
	round, err := h.roundService.StartRound(c.Request.Context(), caller, sig)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

// BuyTicketRequest carries the five part ids to burn and the deposit permit.
type BuyTicketRequest struct {
	PartIDs         []uint64 `json:"partIds" binding:"required"`
	PermitDeadline  int64    `json:"permitDeadline" binding:"required"`
	PermitSignature string   `json:"permitSignature" binding:"required"`
}

// BuyTicket handles POST /rounds/buy-ticket
func (h *RoundHandler) BuyTicket(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	var request BuyTicketRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sig, err := hexutil.Decode(request.PermitSignature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid permit signature encoding"})
		return
	}
	ticket, err := h.roundService.BuyTicket(c.Request.Context(), caller, request.PartIDs, request.PermitDeadline, sig)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// CloseTicketRound handles POST /rounds/close
func (h *RoundHandler) CloseTicketRound(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	round, err := h.roundService.CloseTicketRound(c.Request.Context(), caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// SettleRoundRequest carries the revealed seed for the current draw.
type SettleRoundRequest struct {
	RevealedSeed string `json:"revealedSeed" binding:"required"`
}

// SettleRound handles POST /rounds/settle
func (h *RoundHandler) SettleRound(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	var request SettleRoundRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seed, err := hexutil.Decode(request.RevealedSeed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seed encoding"})
		return
	}
	round, err := h.roundService.SettleRound(c.Request.Context(), caller, seed)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// SettleRoundForcedRequest carries an operator-chosen winning hash.
type SettleRoundForcedRequest struct {
	WinningHash string `json:"winningHash" binding:"required"`
}

// SettleRoundForced handles POST /rounds/:id/settle-forced
func (h *RoundHandler) SettleRoundForced(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	roundID, ok := parseRoundID(c)
	if !ok {
		return
	}
	var request SettleRoundForcedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	round, err := h.roundService.SettleRoundForced(c.Request.Context(), caller, roundID, common.HexToHash(request.WinningHash))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// TicketActionRequest names the ticket a claim or refund applies to.
type TicketActionRequest struct {
	TicketID uint64 `json:"ticketId" binding:"required"`
}

// Claim handles POST /rounds/:id/claim
func (h *RoundHandler) Claim(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	roundID, ok := parseRoundID(c)
	if !ok {
		return
	}
	var request TicketActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := h.roundService.Claim(c.Request.Context(), caller, roundID, request.TicketID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundId": roundID, "ticketId": request.TicketID, "amount": amount})
}

// Refund handles POST /rounds/:id/refund
func (h *RoundHandler) Refund(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	roundID, ok := parseRoundID(c)
	if !ok {
		return
	}
	var request TicketActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := h.roundService.Refund(c.Request.Context(), caller, roundID, request.TicketID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundId": roundID, "ticketId": request.TicketID, "amount": amount})
}

// EndRound handles POST /rounds/:id/end
func (h *RoundHandler) EndRound(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller wallet"})
		return
	}
	roundID, ok := parseRoundID(c)
	if !ok {
		return
	}
	round, err := h.roundService.EndRound(c.Request.Context(), caller, roundID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

// GetCurrentRoundID handles GET /rounds/current
func (h *RoundHandler) GetCurrentRoundID(c *gin.Context) {
	id, err := h.roundService.CurrentRoundID(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundId": id})
}

// GetRoundStatus handles GET /rounds/:id/status
func (h *RoundHandler) GetRoundStatus(c *gin.Context) {
	roundID, ok := parseRoundID(c)
	if !ok {
		return
	}
	status, err := h.roundService.GetRoundStatus(c.Request.Context(), roundID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundId": roundID, "status": status})
}

// GetRoundSettleInfo handles GET /rounds/:id/settle-info
func (h *RoundHandler) GetRoundSettleInfo(c *gin.Context) {
	roundID, ok := parseRoundID(c)
	if !ok {
		return
	}
	info, err := h.roundService.RoundSettleInfo(c.Request.Context(), roundID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetRoundWinnerInfo handles GET /rounds/:id/winner-info
func (h *RoundHandler) GetRoundWinnerInfo(c *gin.Context) {
	roundID, ok := parseRoundID(c)
	if !ok {
		return
	}
	record, err := h.roundService.RoundWinnerInfo(c.Request.Context(), roundID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetRemainTimeCloseTicketRound handles GET /rounds/remain-time/close
func (h *RoundHandler) GetRemainTimeCloseTicketRound(c *gin.Context) {
	remain, err := h.roundService.RemainTimeCloseTicketRound(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"remainSeconds": remain, "applicable": remain != services.RemainTimeNotApplicable})
}

// GetRemainTimeRefund handles GET /rounds/remain-time/refund
func (h *RoundHandler) GetRemainTimeRefund(c *gin.Context) {
	remain, err := h.roundService.RemainTimeRefund(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"remainSeconds": remain, "applicable": remain != services.RemainTimeNotApplicable})
}
