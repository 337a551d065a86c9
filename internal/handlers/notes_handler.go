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

type NotesHandlerParams struct {
	fx.In

	Notes   *repository.NotesRepository
	Folders *repository.FoldersRepository
	Logger  *zap.Logger
}

type NotesHandler struct {
	notes   *repository.NotesRepository
	folders *repository.FoldersRepository
	logger  *zap.Logger
}

func NewNotesHandler(p NotesHandlerParams) *NotesHandler {
	return &NotesHandler{notes: p.Notes, folders: p.Folders, logger: p.Logger}
}

func (h *NotesHandler) Register(r chi.Router) {
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Patch("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)

	r.Get("/folders", h.ListFolders)
	r.Post("/folders", h.CreateFolder)
	r.Get("/folders/{id}", h.GetFolder)
	r.Patch("/folders/{id}", h.UpdateFolder)
	r.Delete("/folders/{id}", h.DeleteFolder)
}

func (h *NotesHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.notes.Create(r.Context(), req.ToNote())
	if err != nil {
		respondRepoError(w, h.logger, err, "Note")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// ListNotes supports folder_id, tag, pinned and search query filters.
func (h *NotesHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filters := repository.NoteFilters{
		Tag:    r.URL.Query().Get("tag"),
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		filters.FolderID = &raw
	}
	if raw := r.URL.Query().Get("pinned"); raw != "" {
		pinned, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid pinned value: "+raw)
			return
		}
		filters.Pinned = &pinned
	}

	notes, err := h.notes.List(r.Context(), userID, filters)
	if err != nil {
		respondRepoError(w, h.logger, err, "Note")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NotesHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.notes.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Updates())
	if err != nil {
		respondRepoError(w, h.logger, err, "Note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NotesHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	found, err := h.notes.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Note")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}
	writeMessage(w, "Note deleted successfully")
}

func (h *NotesHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFolderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folders.Create(r.Context(), req.ToFolder())
	if err != nil {
		respondRepoError(w, h.logger, err, "Folder")
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// ListFolders returns top-level folders by default; parent_id scopes
// the listing to one parent.
func (h *NotesHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var parentID *string
	if raw := r.URL.Query().Get("parent_id"); raw != "" {
		parentID = &raw
	}

	folders, err := h.folders.ListByParent(r.Context(), userID, parentID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Folder")
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (h *NotesHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	folder, err := h.folders.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Folder")
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (h *NotesHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateFolderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folders.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Updates())
	if err != nil {
		respondRepoError(w, h.logger, err, "Folder")
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (h *NotesHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	found, err := h.folders.Delete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondRepoError(w, h.logger, err, "Folder")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Folder not found")
		return
	}
	writeMessage(w, "Folder deleted successfully")
}
