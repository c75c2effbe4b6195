package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type Handler struct{ checks map[string]Pinger }

func NewHandler() *Handler { return &Handler{checks: map[string]Pinger{}} }

// WithCheck adds a dependency probed by Health.
func (h *Handler) WithCheck(name string, p Pinger) *Handler {
	h.checks[name] = p
	return h
}

func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	body := map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if len(deps) > 0 {
		body["checks"] = deps
	}
	return c.JSON(code, body)
}
