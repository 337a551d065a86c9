package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"onetask-api/internal/models"
	"onetask-api/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// decodeJSON parses the request body into dst. A false return means the
// 400 has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}
	return true
}

// requireUserID pulls user_id from the query string; every
// owner-scoped route demands it.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id parameter is required")
		return "", false
	}
	return userID, true
}

// respondRepoError translates repository errors into the uniform HTTP
// contract: absent documents are 404, malformed field values 400,
// conflicts 409, everything else an opaque 500.
func respondRepoError(w http.ResponseWriter, logger *zap.Logger, err error, resource string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, repository.ErrInvalidField), errors.Is(err, models.ErrMissingField):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrProfileExists):
		writeError(w, http.StatusConflict, "User profile already exists")
	default:
		logger.Error("request failed", zap.String("resource", resource), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
