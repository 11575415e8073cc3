package handler

import (
	"context"
	"time"

	"devconnector/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewHealthHandler reports on checks by name. Nil entries are skipped.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	out := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			out[name] = p
		}
	}
	return &HealthHandler{checks: out}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", func(c fiber.Ctx) error {
		return c.SendString("API Running")
	})
	r.Get("/health", h.Health)
}

// Health pings every dependency and reports "degraded" if any is down.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			res.Checks[name] = "down"
			res.Status = "degraded"
			continue
		}
		res.Checks[name] = "up"
	}
	return response.Success(c, fiber.StatusOK, res)
}
