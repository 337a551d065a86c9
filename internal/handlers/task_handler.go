package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

type TaskHandlerParams struct {
	fx.In

	Tasks  *repository.Repository[*models.Task]
	Logger *zap.Logger
}

type TaskHandler struct {
	tasks  *repository.Repository[*models.Task]
	logger *zap.Logger
}

func NewTaskHandler(p TaskHandlerParams) *TaskHandler {
	return &TaskHandler{tasks: p.Tasks, logger: p.Logger}
}

func (h *TaskHandler) Register(r chi.Router) {
	r.Get("/tasks", h.List)
	r.Post("/tasks", h.Create)
	r.Get("/tasks/overdue", h.ListOverdue)
	r.Get("/tasks/{id}", h.Get)
	r.Put("/tasks/{id}", h.Update)
	r.Delete("/tasks/{id}", h.Delete)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Create(r.Context(), req.ToTask())
	if err != nil {
		respondRepoError(w, h.logger, err, "Task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// List returns the user's tasks, optionally narrowed by status and
// priority. Filtering happens in memory over the owner-scoped query.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var statusFilter *models.TaskStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", raw))
			return
		}
		statusFilter = &status
	}
	var priorityFilter *models.TaskPriority
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !priority.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid priority: %s", raw))
			return
		}
		priorityFilter = &priority
	}

	tasks, err := h.tasks.ListByUser(r.Context(), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Task")
		return
	}

	filtered := make([]*models.Task, 0, len(tasks))
	for _, task := range tasks {
		if statusFilter != nil && task.Status != *statusFilter {
			continue
		}
		if priorityFilter != nil && task.Priority != *priorityFilter {
			continue
		}
		filtered = append(filtered, task)
	}
	writeJSON(w, http.StatusOK, filtered)
}

// ListOverdue returns incomplete tasks whose due date has passed.
func (h *TaskHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByUser(r.Context(), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Task")
		return
	}

	now := time.Now().UTC()
	overdue := make([]*models.Task, 0)
	for _, task := range tasks {
		if task.IsOverdue(now) {
			overdue = append(overdue, task)
		}
	}
	writeJSON(w, http.StatusOK, overdue)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Updates())
	if err != nil {
		respondRepoError(w, h.logger, err, "Task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	found, err := h.tasks.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Task")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	writeMessage(w, "Task deleted successfully")
}
