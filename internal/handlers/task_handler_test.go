package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/repository"
)

func newTaskRouter(t *testing.T) chi.Router {
	t.Helper()
	p := repository.Params{
		Store:  docstore.NewMemoryStore(),
		Logger: zap.NewNop(),
	}
	h := NewTaskHandler(TaskHandlerParams{
		Tasks:  repository.NewTaskRepository(p),
		Logger: zap.NewNop(),
	})
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("%s %s: invalid JSON response %q: %v", method, target, rec.Body.String(), err)
		}
	}
	return rec, payload
}

func TestTaskLifecycle(t *testing.T) {
	router := newTaskRouter(t)

	rec, created := doJSON(t, router, http.MethodPost, "/tasks", `{"title":"Buy milk","user_id":"u1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("create response missing id")
	}
	if created["status"] != "pending" || created["priority"] != "medium" {
		t.Errorf("defaults: status=%v priority=%v", created["status"], created["priority"])
	}
	if created["created_at"] != created["updated_at"] {
		t.Errorf("created_at %v must equal updated_at %v", created["created_at"], created["updated_at"])
	}

	rec, got := doJSON(t, router, http.MethodGet, "/tasks/"+id+"?user_id=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got %d, want 200", rec.Code)
	}
	if got["title"] != "Buy milk" {
		t.Errorf("get title: %v", got["title"])
	}

	rec, updated := doJSON(t, router, http.MethodPut, "/tasks/"+id+"?user_id=u1", `{"status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if updated["status"] != "completed" {
		t.Errorf("updated status: %v", updated["status"])
	}

	rec, deleted := doJSON(t, router, http.MethodDelete, "/tasks/"+id+"?user_id=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d, want 200", rec.Code)
	}
	if msg, _ := deleted["message"].(string); msg == "" {
		t.Error("delete must confirm with a message body")
	}

	rec, notFound := doJSON(t, router, http.MethodGet, "/tasks/"+id+"?user_id=u1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d, want 404", rec.Code)
	}
	if notFound["error"] != "Task not found" {
		t.Errorf("not found body: %v", notFound)
	}
}

func TestTaskCreateValidation(t *testing.T) {
	router := newTaskRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/tasks", `{"user_id":"u1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing title: got %d, want 400", rec.Code)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "title") {
		t.Errorf("error should name the missing field: %v", body)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/tasks", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad JSON: got %d, want 400", rec.Code)
	}
}

func TestTaskListRequiresUserID(t *testing.T) {
	router := newTaskRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/tasks", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if body["error"] != "user_id parameter is required" {
		t.Errorf("error body: %v", body)
	}
}

func TestTaskListStatusFilter(t *testing.T) {
	router := newTaskRouter(t)

	doJSON(t, router, http.MethodPost, "/tasks", `{"title":"a","user_id":"u1"}`)
	rec, created := doJSON(t, router, http.MethodPost, "/tasks", `{"title":"b","user_id":"u1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	id := created["id"].(string)
	doJSON(t, router, http.MethodPut, "/tasks/"+id+"?user_id=u1", `{"status":"completed"}`)

	req := httptest.NewRequest(http.MethodGet, "/tasks?user_id=u1&status=completed", nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("filtered list: got %d", rec2.Code)
	}
	var tasks []map[string]any
	if err := json.Unmarshal(rec2.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(tasks) != 1 || tasks[0]["title"] != "b" {
		t.Errorf("filtered list: %v", tasks)
	}

	// Unknown enum values are rejected, not silently ignored.
	rec3, _ := doJSON(t, router, http.MethodGet, "/tasks?user_id=u1&status=bogus", "")
	if rec3.Code != http.StatusBadRequest {
		t.Fatalf("bogus status: got %d, want 400", rec3.Code)
	}
}

func TestTaskOverdueEndpoint(t *testing.T) {
	router := newTaskRouter(t)

	doJSON(t, router, http.MethodPost, "/tasks", `{"title":"late","user_id":"u1","due_date":"2020-01-01T00:00:00Z"}`)
	doJSON(t, router, http.MethodPost, "/tasks", `{"title":"future","user_id":"u1","due_date":"2099-01-01T00:00:00Z"}`)

	req := httptest.NewRequest(http.MethodGet, "/tasks/overdue?user_id=u1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("overdue: got %d", rec.Code)
	}
	var tasks []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 1 || tasks[0]["title"] != "late" {
		t.Errorf("overdue list: %v", tasks)
	}
}
