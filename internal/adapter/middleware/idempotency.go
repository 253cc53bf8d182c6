package middleware

import (
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type cachedResponse struct {
	status int
	body   []byte
}

// Idempotency caches responses by the Idempotency-Key header, so a retried
// transfer is answered from the cache instead of moving money twice. The
// cache is in-process only and resets together with the ledger.
func Idempotency() fiber.Handler {
	var (
		mu    sync.Mutex
		cache = make(map[string]cachedResponse)
	)

	return func(c *fiber.Ctx) error {
		// 1. Get Key from Header (copy it; fiber reuses its header buffers)
		key := utils.CopyString(c.Get("Idempotency-Key"))

		// If no key, skip
		if key == "" {
			return c.Next()
		}

		// 2. Check if we already answered this key
		mu.Lock()
		cached, hit := cache[key]
		mu.Unlock()

		if hit {
			slog.Info("🛑 Idempotency Hit! Returning cached response", "key", key)
			c.Set("X-Idempotency-Hit", "true")
			c.Set("Content-Type", "application/json")
			return c.Status(cached.status).Send(cached.body)
		}

		// 3. Run the Handler
		if err := c.Next(); err != nil {
			return err
		}

		// 4. Save the Result (copy the body; fiber reuses its buffers)
		body := make([]byte, len(c.Response().Body()))
		copy(body, c.Response().Body())

		mu.Lock()
		cache[key] = cachedResponse{status: c.Response().StatusCode(), body: body}
		mu.Unlock()

		slog.Info("💾 Idempotency Key Saved", "key", key)
		return nil
	}
}
