package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Lelo88/item-manager/internal/httpx"
)

const readyTimeout = 2 * time.Second

// Pinger es lo mínimo que necesita /ready del registro de sesiones.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler encapsula endpoints de health.
type Handler struct {
	sessions Pinger
}

// New crea un handler de health. sessions puede ser nil: /ready responde 503.
func New(sessions Pinger) *Handler {
	return &Handler{sessions: sessions}
}

// Health indica si el proceso está vivo.
// NO chequea el registro de sesiones. Eso va en /ready.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready indica si el registro de sesiones acepta operaciones.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.sessions == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "session store not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := handler.sessions.Ping(ctx); err != nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "session store is not available")
		return
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

