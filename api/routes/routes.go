package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/playparts/lotto-backend/internal/config"
	"github.com/playparts/lotto-backend/internal/handlers"
	"github.com/playparts/lotto-backend/internal/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Round  *handlers.RoundHandler
	Ticket *handlers.TicketHandler
	Part   *handlers.PartHandler
	Vault  *handlers.VaultHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Round lifecycle and queries
		rounds := protected.Group("/rounds")
		{
			rounds.GET("/current", h.Round.GetCurrentRoundID)
			rounds.GET("/:id/status", h.Round.GetRoundStatus)
			rounds.GET("/:id/settle-info", h.Round.GetRoundSettleInfo)
			rounds.GET("/:id/winner-info", h.Round.GetRoundWinnerInfo)
			rounds.GET("/remain-time/close", h.Round.GetRemainTimeCloseTicketRound)
			rounds.GET("/remain-time/refund", h.Round.GetRemainTimeRefund)

			rounds.POST("/buy-ticket", h.Round.BuyTicket)
			rounds.POST("/close", h.Round.CloseTicketRound)
			rounds.POST("/:id/claim", h.Round.Claim)
			rounds.POST("/:id/refund", h.Round.Refund)
		}

		// Ticket ledger
		tickets := protected.Group("/tickets")
		{
			tickets.GET("/:id", h.Ticket.GetTicketByID)
			tickets.GET("/owner/:address", h.Ticket.GetTicketsByOwner)
			tickets.GET("/round/:id", h.Ticket.GetTicketsByRound)
			tickets.POST("/:id/transfer", h.Ticket.TransferTicket)
		}

		// Part ledger
		parts := protected.Group("/parts")
		{
			parts.GET("/:id", h.Part.GetPartByID)
			parts.GET("/owner/:address", h.Part.GetPartsByOwner)
		}

		// Vault queries
		vault := protected.Group("/vault")
		{
			vault.GET("/rounds/:id", h.Vault.GetRoundBalance)
			vault.GET("/accounts/:address", h.Vault.GetAccount)
		}

		// Admin-only routes
		admin := protected.Group("")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/rounds/start", h.Round.StartRound)
			admin.POST("/rounds/settle", h.Round.SettleRound)
			admin.POST("/rounds/:id/settle-forced", h.Round.SettleRoundForced)
			admin.POST("/rounds/:id/end", h.Round.EndRound)
			admin.POST("/parts/mint", h.Part.MintPart)
			admin.POST("/vault/credit", h.Vault.Credit)
			admin.POST("/auth/register", h.Auth.Register)
		}
	}

	return router
}
