package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hasminC/BankingApp/internal/core/ledger"
)

type AccountHandler struct {
	Ledger *ledger.Ledger
}

// ListAccounts returns the seeded accounts with their live balances, in the
// order the home screen shows them.
func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"accounts": h.Ledger.Accounts()})
}

// GetAccount returns one account by id.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	acc, ok := h.Ledger.Account(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}
	return c.JSON(acc)
}
