package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/playparts/lotto-backend/api/routes"
	"github.com/playparts/lotto-backend/internal/config"
	"github.com/playparts/lotto-backend/internal/handlers"
	"github.com/playparts/lotto-backend/internal/repositories/mongodb"
	"github.com/playparts/lotto-backend/internal/services"
	"github.com/playparts/lotto-backend/internal/utils"
	mongoclient "github.com/playparts/lotto-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	client, err := mongoclient.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDB.Database)

	// Repositories
	roundRepo := mongodb.NewRoundRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	partRepo := mongodb.NewPartRepository(db)
	commitmentRepo := mongodb.NewCommitmentRepository(db)
	winnerRepo := mongodb.NewWinnerRecordRepository(db)
	coinRepo := mongodb.NewCoinAccountRepository(db)
	vaultRepo := mongodb.NewVaultBalanceRepository(db)
	adminRepo := mongodb.NewAdminUserRepository(db)

	// Services
	vaultAddr, err := utils.ParseAddress(cfg.Engine.VaultAddress)
	if err != nil {
		log.Fatalf("Invalid vault address: %v", err)
	}
	vaultService := services.NewVaultService(coinRepo, vaultRepo, vaultAddr)
	roleStore := services.NewAdminRoleStore(adminRepo)
	roundService, err := services.NewRoundService(roundRepo, ticketRepo, partRepo, commitmentRepo, winnerRepo, vaultService, roleStore, cfg.Engine)
	if err != nil {
		log.Fatalf("Failed to build round engine: %v", err)
	}
	ticketService := services.NewTicketService(ticketRepo)
	partService := services.NewPartService(partRepo)
	authService := services.NewAuthService(adminRepo, cfg)

	// Handlers and router
	router := routes.SetupRouter(cfg, &routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Round:  handlers.NewRoundHandler(roundService),
		Ticket: handlers.NewTicketHandler(ticketService),
		Part:   handlers.NewPartHandler(partService),
		Vault:  handlers.NewVaultHandler(vaultService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
