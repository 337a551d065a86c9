package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

type ProjectHandlerParams struct {
	fx.In

	Projects *repository.Repository[*models.Project]
	Logger   *zap.Logger
}

type ProjectHandler struct {
	projects *repository.Repository[*models.Project]
	logger   *zap.Logger
}

func NewProjectHandler(p ProjectHandlerParams) *ProjectHandler {
	return &ProjectHandler{projects: p.Projects, logger: p.Logger}
}

func (h *ProjectHandler) Register(r chi.Router) {
	r.Get("/projects", h.List)
	r.Post("/projects", h.Create)
	r.Get("/projects/{id}", h.Get)
	r.Put("/projects/{id}", h.Update)
	r.Delete("/projects/{id}", h.Delete)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projects.Create(r.Context(), req.ToProject())
	if err != nil {
		respondRepoError(w, h.logger, err, "Project")
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	projects, err := h.projects.ListByUser(r.Context(), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Project")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	project, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projects.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Updates())
	if err != nil {
		respondRepoError(w, h.logger, err, "Project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	found, err := h.projects.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Project")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeMessage(w, "Project deleted successfully")
}
