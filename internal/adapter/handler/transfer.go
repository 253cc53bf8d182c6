package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hasminC/BankingApp/internal/core/domain"
	"github.com/hasminC/BankingApp/internal/core/ledger"
)

type TransferHandler struct {
	Ledger *ledger.Ledger
}

// ValidateTransfer dry-runs the transfer rules so the app can surface errors
// before the user confirms. No state is touched either way.
func (h *TransferHandler) ValidateTransfer(c *fiber.Ctx) error {
	var in ledger.TransferInput

	// 1. Parse JSON
	if err := c.BodyParser(&in); err != nil {
		slog.Warn("Invalid transfer body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// 2. Run the rules
	if err := h.Ledger.ValidateTransfer(in); err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(fiber.Map{"valid": false, "error": verr.Message})
		}
		return err
	}

	return c.JSON(fiber.Map{"valid": true})
}

// MakeTransfer validates and executes a transfer. Rejections come back as
// 422 with the exact message the app shows; success returns the recorded
// transaction.
func (h *TransferHandler) MakeTransfer(c *fiber.Ctx) error {
	var in ledger.TransferInput

	// 1. Parse JSON
	if err := c.BodyParser(&in); err != nil {
		slog.Warn("Invalid transfer body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// 2. Validate + execute atomically inside the engine
	txn, err := h.Ledger.ProcessTransfer(in)
	if err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": verr.Message})
		}
		slog.Error("Transfer failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Transfer failed"})
	}

	slog.Info("✅ Transfer processed",
		"transaction_id", txn.ID,
		"amount", domain.FormatCurrency(txn.Amount),
		"type", txn.Type,
		"source", txn.SourceAccount.ID,
	)

	// 3. Return the recorded transaction
	return c.Status(http.StatusCreated).JSON(txn)
}

// GetHistory returns the transaction history, most recent first.
func (h *TransferHandler) GetHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"transactions": h.Ledger.Transactions()})
}

// GetLimits exposes the fixed transfer configuration so the UI can render
// hints without hardcoding them.
func (h *TransferHandler) GetLimits(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"min_amount":              ledger.MinAmount,
		"max_amount":              ledger.MaxAmount,
		"valid_external_accounts": h.Ledger.ValidExternalAccounts(),
		"user_email":              h.Ledger.UserEmail(),
		"session_id":              h.Ledger.SessionID(),
	})
}
