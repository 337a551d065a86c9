package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"

	"onetask-api/internal/models"
)

type HealthHandlerParams struct {
	fx.In

	Version string `name:"version"`
}

type HealthHandler struct {
	version string
}

func NewHealthHandler(p HealthHandlerParams) *HealthHandler {
	return &HealthHandler{version: p.Version}
}

func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": models.FormatTimestamp(time.Now().UTC()),
		"service":   "onetask-api",
		"version":   h.version,
	})
}
