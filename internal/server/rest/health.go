package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/logging"
)

const pingTimeout = 2 * time.Second

// HealthHandler answers the liveness probe.
type HealthHandler struct {
	store  dbx.Pinger
	logger logging.Logger
}

// NewHealthHandler builds the liveness probe. A nil store (the in-memory
// backend) is always healthy.
func NewHealthHandler(store dbx.Pinger, logger logging.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger.With("handler", "health")}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Check pings the store and reports ok or unavailable.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.store.PingContext(ctx); err != nil {
			h.logger.Warn(r.Context(), "store ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
