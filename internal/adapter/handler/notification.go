package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hasminC/BankingApp/internal/core/ledger"
)

type NotificationHandler struct {
	Ledger *ledger.Ledger
}

// GetInbox returns the simulated email inbox, most recent first, plus the
// recipient and count for the badge in the bottom bar.
func (h *NotificationHandler) GetInbox(c *fiber.Ctx) error {
	emails := h.Ledger.Notifications()
	return c.JSON(fiber.Map{
		"to":            h.Ledger.UserEmail(),
		"count":         len(emails),
		"notifications": emails,
	})
}
