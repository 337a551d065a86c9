package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

type GoalHandlerParams struct {
	fx.In

	Yearly    *repository.Repository[*models.YearlyGoal]
	Quarterly *repository.Repository[*models.QuarterlyGoal]
	Weekly    *repository.Repository[*models.WeeklyGoal]
	Logger    *zap.Logger
}

// GoalHandler serves the three goal tiers. The tiers share one request
// schema and one route shape, so each is a goalResource instantiation.
type GoalHandler struct {
	yearly    *goalResource[*models.YearlyGoal]
	quarterly *goalResource[*models.QuarterlyGoal]
	weekly    *goalResource[*models.WeeklyGoal]
}

func NewGoalHandler(p GoalHandlerParams) *GoalHandler {
	return &GoalHandler{
		yearly: &goalResource[*models.YearlyGoal]{
			repo:     p.Yearly,
			logger:   p.Logger,
			docType:  models.DocumentTypeYearlyGoal,
			label:    "Yearly goal",
			toEntity: (*models.CreateGoalRequest).ToYearlyGoal,
		},
		quarterly: &goalResource[*models.QuarterlyGoal]{
			repo:     p.Quarterly,
			logger:   p.Logger,
			docType:  models.DocumentTypeQuarterlyGoal,
			label:    "Quarterly goal",
			toEntity: (*models.CreateGoalRequest).ToQuarterlyGoal,
		},
		weekly: &goalResource[*models.WeeklyGoal]{
			repo:     p.Weekly,
			logger:   p.Logger,
			docType:  models.DocumentTypeWeeklyGoal,
			label:    "Weekly goal",
			toEntity: (*models.CreateGoalRequest).ToWeeklyGoal,
		},
	}
}

func (h *GoalHandler) Register(r chi.Router) {
	h.yearly.register(r, "/yearly-goals")
	h.quarterly.register(r, "/quarterly-goals")
	h.weekly.register(r, "/weekly-goals")
}

type goalResource[T models.Document] struct {
	repo     *repository.Repository[T]
	logger   *zap.Logger
	docType  models.DocumentType
	label    string
	toEntity func(*models.CreateGoalRequest) T
}

func (g *goalResource[T]) register(r chi.Router, prefix string) {
	r.Get(prefix, g.list)
	r.Post(prefix, g.create)
	r.Get(prefix+"/{id}", g.get)
	r.Put(prefix+"/{id}", g.update)
	r.Delete(prefix+"/{id}", g.delete)
}

func (g *goalResource[T]) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(g.docType); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := g.repo.Create(r.Context(), g.toEntity(&req))
	if err != nil {
		respondRepoError(w, g.logger, err, g.label)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (g *goalResource[T]) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	goals, err := g.repo.ListByUser(r.Context(), userID)
	if err != nil {
		respondRepoError(w, g.logger, err, g.label)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (g *goalResource[T]) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	goal, err := g.repo.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, g.logger, err, g.label)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (g *goalResource[T]) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := g.repo.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Updates())
	if err != nil {
		respondRepoError(w, g.logger, err, g.label)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (g *goalResource[T]) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	found, err := g.repo.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, g.logger, err, g.label)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, g.label+" not found")
		return
	}
	writeMessage(w, g.label+" deleted successfully")
}
