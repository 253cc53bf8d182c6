package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hasminC/BankingApp/internal/adapter/handler"
	"github.com/hasminC/BankingApp/internal/adapter/middleware"
	"github.com/hasminC/BankingApp/internal/core/config"
	"github.com/hasminC/BankingApp/internal/core/domain"
	"github.com/hasminC/BankingApp/internal/core/ledger"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()

	// 2. Setup Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Build the Ledger Engine (all state lives here, in memory)
	opts := []ledger.Option{
		ledger.WithObserver(func(txn domain.Transaction, email domain.EmailNotification) {
			slog.Info("📧 Transfer confirmation recorded",
				"transaction_id", txn.ID,
				"email_id", email.ID,
				"to", email.To,
				"amount", domain.FormatCurrency(txn.Amount),
			)
		}),
	}
	if cfg.UserEmail != "" {
		opts = append(opts, ledger.WithUserEmail(cfg.UserEmail))
	}
	eng := ledger.New(opts...)

	// 4. Setup Handlers
	accountHandler := &handler.AccountHandler{Ledger: eng}
	transferHandler := &handler.TransferHandler{Ledger: eng}
	notificationHandler := &handler.NotificationHandler{Ledger: eng}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// A transfer against an account id that slipped past validation panics
	// inside the engine; recover turns that into a 500 instead of a crash.
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 6. Routes
	api := app.Group("/v1")
	api.Get("/accounts", accountHandler.ListAccounts)
	api.Get("/accounts/:id", accountHandler.GetAccount)
	api.Post("/transfers/validate", transferHandler.ValidateTransfer)
	api.Post("/transfers", middleware.Idempotency(), transferHandler.MakeTransfer)
	api.Get("/transactions", transferHandler.GetHistory)
	api.Get("/notifications", notificationHandler.GetInbox)
	api.Get("/limits", transferHandler.GetLimits)

	// Graceful shutdown: finish in-flight requests, then exit. The ledger is
	// memory-only, so there is nothing to flush.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("🚀 Server starting", "env", cfg.Env, "port", cfg.Port, "session_id", eng.SessionID())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("🛑 Shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	slog.Info("👋 Server exited successfully")
}
