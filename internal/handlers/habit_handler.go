package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

type HabitHandlerParams struct {
	fx.In

	Habits *repository.Repository[*models.Habit]
	Logger *zap.Logger
}

type HabitHandler struct {
	habits *repository.Repository[*models.Habit]
	logger *zap.Logger
}

func NewHabitHandler(p HabitHandlerParams) *HabitHandler {
	return &HabitHandler{habits: p.Habits, logger: p.Logger}
}

func (h *HabitHandler) Register(r chi.Router) {
	r.Get("/habits", h.List)
	r.Post("/habits", h.Create)
	r.Get("/habits/{id}", h.Get)
	r.Put("/habits/{id}", h.Update)
	r.Delete("/habits/{id}", h.Delete)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHabitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := h.habits.Create(r.Context(), req.ToHabit())
	if err != nil {
		respondRepoError(w, h.logger, err, "Habit")
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	habits, err := h.habits.ListByUser(r.Context(), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Habit")
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	habit, err := h.habits.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Habit")
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateHabitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := h.habits.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Updates())
	if err != nil {
		respondRepoError(w, h.logger, err, "Habit")
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	found, err := h.habits.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Habit")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Habit not found")
		return
	}
	writeMessage(w, "Habit deleted successfully")
}
