package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

type ChatHandlerParams struct {
	fx.In

	Sessions *repository.ChatSessionRepository
	Logger   *zap.Logger
}

type ChatHandler struct {
	sessions *repository.ChatSessionRepository
	logger   *zap.Logger
}

func NewChatHandler(p ChatHandlerParams) *ChatHandler {
	return &ChatHandler{sessions: p.Sessions, logger: p.Logger}
}

func (h *ChatHandler) Register(r chi.Router) {
	r.Get("/chat/{user_id}/sessions", h.ListSessions)
	r.Post("/chat/{user_id}/sessions", h.CreateSession)
	r.Post("/chat/{user_id}/sessions/{id}/messages", h.AddMessage)
	r.Delete("/chat/{user_id}/sessions/{id}", h.DeleteSession)
}

func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChatSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessions.Create(r.Context(), chi.URLParam(r, "user_id"), req.SessionTitle)
	if err != nil {
		respondRepoError(w, h.logger, err, "Chat session")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit value: "+raw)
			return
		}
		limit = parsed
	}

	sessions, err := h.sessions.GetRecent(r.Context(), chi.URLParam(r, "user_id"), limit)
	if err != nil {
		respondRepoError(w, h.logger, err, "Chat session")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *ChatHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req models.AddChatMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	message := models.ChatMessage{Role: req.Role, Content: req.Content}
	session, err := h.sessions.AddMessage(r.Context(), chi.URLParam(r, "user_id"), chi.URLParam(r, "id"), message)
	if err != nil {
		respondRepoError(w, h.logger, err, "Chat session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	found, err := h.sessions.Delete(r.Context(), chi.URLParam(r, "user_id"), chi.URLParam(r, "id"))
	if err != nil {
		respondRepoError(w, h.logger, err, "Chat session")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Chat session not found")
		return
	}
	writeMessage(w, "Chat session deleted successfully")
}
