package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/logger"
)

const pingTimeout = 2 * time.Second

// Health reports whether the database is reachable.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database ping failed", "error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	response.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
