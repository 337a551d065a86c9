package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

type ProfileHandlerParams struct {
	fx.In

	Profiles   *repository.UserProfileRepository
	Onboarding *repository.OnboardingRepository
	Logger     *zap.Logger
}

// ProfileHandler serves profile CRUD and the onboarding flow. Both are
// keyed by user_id in the path rather than a document id.
type ProfileHandler struct {
	profiles   *repository.UserProfileRepository
	onboarding *repository.OnboardingRepository
	logger     *zap.Logger
}

func NewProfileHandler(p ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{profiles: p.Profiles, onboarding: p.Onboarding, logger: p.Logger}
}

func (h *ProfileHandler) Register(r chi.Router) {
	r.Post("/profiles", h.Create)
	r.Get("/profiles/{user_id}", h.Get)
	r.Put("/profiles/{user_id}", h.Update)
	r.Delete("/profiles/{user_id}", h.Delete)

	r.Get("/onboarding/{user_id}", h.GetOnboarding)
	r.Put("/onboarding/{user_id}/step", h.UpdateOnboardingStep)
	r.Post("/onboarding/{user_id}/reset", h.ResetOnboarding)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profiles.Create(r.Context(), req.ToProfile())
	if err != nil {
		respondRepoError(w, h.logger, err, "User profile")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetByUser(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		respondRepoError(w, h.logger, err, "User profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profiles.Update(r.Context(), chi.URLParam(r, "user_id"), req.Updates())
	if err != nil {
		respondRepoError(w, h.logger, err, "User profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	found, err := h.profiles.Delete(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		respondRepoError(w, h.logger, err, "User profile")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "User profile not found")
		return
	}
	writeMessage(w, "User profile and associated data deleted successfully")
}

// GetOnboarding auto-creates the initial state on first read.
func (h *ProfileHandler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	status, err := h.onboarding.GetOrCreate(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		respondRepoError(w, h.logger, err, "Onboarding status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *ProfileHandler) UpdateOnboardingStep(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOnboardingStepRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.onboarding.UpdateStep(r.Context(), chi.URLParam(r, "user_id"), req.Step, req.InterviewData)
	if err != nil {
		respondRepoError(w, h.logger, err, "Onboarding status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *ProfileHandler) ResetOnboarding(w http.ResponseWriter, r *http.Request) {
	status, err := h.onboarding.Reset(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		respondRepoError(w, h.logger, err, "Onboarding status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}
