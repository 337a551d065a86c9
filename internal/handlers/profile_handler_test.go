package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/repository"
)

func newProfileRouter(t *testing.T) chi.Router {
	t.Helper()
	p := repository.Params{
		Store:  docstore.NewMemoryStore(),
		Logger: zap.NewNop(),
	}
	onboarding := repository.NewOnboardingRepository(p)
	chat := repository.NewChatSessionRepository(p)
	profiles := repository.NewUserProfileRepository(repository.UserProfileParams{
		Store:      p.Store,
		Logger:     p.Logger,
		Onboarding: onboarding,
		Chat:       chat,
	})

	h := NewProfileHandler(ProfileHandlerParams{
		Profiles:   profiles,
		Onboarding: onboarding,
		Logger:     zap.NewNop(),
	})
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestProfileCreateConflict(t *testing.T) {
	router := newProfileRouter(t)
	body := `{"display_name":"Ada","email":"ada@example.com","user_id":"u1"}`

	rec, _ := doJSON(t, router, http.MethodPost, "/profiles", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: got %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec, errBody := doJSON(t, router, http.MethodPost, "/profiles", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create: got %d, want 409", rec.Code)
	}
	if errBody["error"] != "User profile already exists" {
		t.Errorf("conflict body: %v", errBody)
	}
}

func TestProfileReadUpdateDelete(t *testing.T) {
	router := newProfileRouter(t)

	doJSON(t, router, http.MethodPost, "/profiles", `{"display_name":"Ada","email":"ada@example.com","user_id":"u1"}`)

	rec, profile := doJSON(t, router, http.MethodGet, "/profiles/u1", "")
	if rec.Code != http.StatusOK || profile["display_name"] != "Ada" {
		t.Fatalf("get: %d %v", rec.Code, profile)
	}

	rec, updated := doJSON(t, router, http.MethodPut, "/profiles/u1", `{"bio":"mathematician"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d: %s", rec.Code, rec.Body.String())
	}
	if updated["bio"] != "mathematician" {
		t.Errorf("bio: %v", updated["bio"])
	}
	if updated["last_active"] == nil {
		t.Error("update must stamp last_active")
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/profiles/u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/profiles/u1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d, want 404", rec.Code)
	}
}

func TestOnboardingFlow(t *testing.T) {
	router := newProfileRouter(t)

	// First read auto-creates the initial state.
	rec, status := doJSON(t, router, http.MethodGet, "/onboarding/u2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got %d", rec.Code)
	}
	if status["current_step"] != "welcome" || status["is_completed"] != false {
		t.Fatalf("initial state: %v", status)
	}

	rec, status = doJSON(t, router, http.MethodPut, "/onboarding/u2/step", `{"step":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("step update: got %d: %s", rec.Code, rec.Body.String())
	}
	if status["is_completed"] != true || status["completed_at"] == nil {
		t.Errorf("terminal step: %v", status)
	}
	steps, _ := status["completed_steps"].([]any)
	found := false
	for _, s := range steps {
		if s == "completed" {
			found = true
		}
	}
	if !found {
		t.Errorf("completed_steps: %v", steps)
	}

	rec, status = doJSON(t, router, http.MethodPost, "/onboarding/u2/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: got %d", rec.Code)
	}
	if status["current_step"] != "welcome" || status["is_completed"] != false {
		t.Errorf("reset state: %v", status)
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/onboarding/u2/step", `{"step":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid step: got %d, want 400", rec.Code)
	}
}
