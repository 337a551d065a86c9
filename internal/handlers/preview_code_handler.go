package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

type PreviewCodeHandlerParams struct {
	fx.In

	Codes  *repository.PreviewCodeRepository
	Logger *zap.Logger
}

// PreviewCodeHandler serves code redemption plus the admin surface for
// loading and resetting codes.
type PreviewCodeHandler struct {
	codes  *repository.PreviewCodeRepository
	logger *zap.Logger
}

func NewPreviewCodeHandler(p PreviewCodeHandlerParams) *PreviewCodeHandler {
	return &PreviewCodeHandler{codes: p.Codes, logger: p.Logger}
}

func (h *PreviewCodeHandler) Register(r chi.Router) {
	r.Post("/preview-codes/validate", h.Validate)
	r.Get("/preview-codes/stats", h.Stats)
	r.Post("/admin/preview-codes/bulk-load", h.BulkLoad)
	r.Post("/admin/preview-codes/reset", h.Reset)
}

// Validate redeems a code. Business failures (unknown or already-used
// code) are 200 responses with valid=false; only transport or store
// failures become error statuses.
func (h *PreviewCodeHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidatePreviewCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.codes.ValidateAndUse(r.Context(), req.Code, req.UserID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Preview code")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PreviewCodeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.codes.Stats(r.Context())
	if err != nil {
		respondRepoError(w, h.logger, err, "Preview code")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *PreviewCodeHandler) BulkLoad(w http.ResponseWriter, r *http.Request) {
	var req models.BulkLoadPreviewCodesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.codes.BulkLoad(r.Context(), req.Codes)
	writeJSON(w, http.StatusOK, result)
}

func (h *PreviewCodeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPreviewCodesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.codes.Reset(r.Context(), req.ResetType)
	if err != nil {
		respondRepoError(w, h.logger, err, "Preview code")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
