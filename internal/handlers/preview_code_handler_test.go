package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/repository"
)

func newPreviewCodeRouter(t *testing.T) chi.Router {
	t.Helper()
	p := repository.Params{
		Store:  docstore.NewMemoryStore(),
		Logger: zap.NewNop(),
	}
	h := NewPreviewCodeHandler(PreviewCodeHandlerParams{
		Codes:  repository.NewPreviewCodeRepository(p),
		Logger: zap.NewNop(),
	})
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestPreviewCodeValidateBusinessFailuresAre200(t *testing.T) {
	router := newPreviewCodeRouter(t)

	// Unknown code: still HTTP 200, valid=false with an error code.
	rec, body := doJSON(t, router, http.MethodPost, "/preview-codes/validate", `{"code":"NOPE","user_id":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown code: got %d, want 200", rec.Code)
	}
	if body["valid"] != false || body["error_code"] != "INVALID_CODE" {
		t.Errorf("unknown code body: %v", body)
	}
}

func TestPreviewCodeEndToEnd(t *testing.T) {
	router := newPreviewCodeRouter(t)

	rec, loaded := doJSON(t, router, http.MethodPost, "/admin/preview-codes/bulk-load", `{"codes":["GOLD1","GOLD2"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk load: got %d: %s", rec.Code, rec.Body.String())
	}
	if loaded["created_count"] != float64(2) {
		t.Fatalf("bulk load: %v", loaded)
	}

	rec, body := doJSON(t, router, http.MethodPost, "/preview-codes/validate", `{"code":"gold1","user_id":"u1"}`)
	if rec.Code != http.StatusOK || body["valid"] != true {
		t.Fatalf("redeem: %d %v", rec.Code, body)
	}

	rec, body = doJSON(t, router, http.MethodPost, "/preview-codes/validate", `{"code":"GOLD1","user_id":"u2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second redeem: got %d", rec.Code)
	}
	if body["valid"] != false || body["error_code"] != "CODE_ALREADY_USED" {
		t.Errorf("second redeem body: %v", body)
	}

	rec, stats := doJSON(t, router, http.MethodGet, "/preview-codes/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: got %d", rec.Code)
	}
	if stats["total_codes"] != float64(2) || stats["used_codes"] != float64(1) {
		t.Errorf("stats: %v", stats)
	}

	rec, reset := doJSON(t, router, http.MethodPost, "/admin/preview-codes/reset", `{"reset_type":"mark_unused"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: got %d", rec.Code)
	}
	if reset["affected_count"] != float64(1) {
		t.Errorf("reset: %v", reset)
	}
}

func TestPreviewCodeValidateRequiresFields(t *testing.T) {
	router := newPreviewCodeRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/preview-codes/validate", `{"code":"X"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing user_id: got %d, want 400", rec.Code)
	}
}
