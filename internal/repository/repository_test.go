package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/models"
)

func newTestParams(t *testing.T) Params {
	t.Helper()
	return Params{
		Store:  docstore.NewMemoryStore(),
		Logger: zap.NewNop(),
	}
}

// fixedClock returns a now func stepping one minute per call, so tests
// can observe updated_at advancing.
func fixedClock(start time.Time) func() time.Time {
	calls := 0
	return func() time.Time {
		t := start.Add(time.Duration(calls) * time.Minute)
		calls++
		return t
	}
}

func createTask(t *testing.T, repo *Repository[*models.Task], userID, title string) *models.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), &models.Task{
		BaseDocument: models.BaseDocument{UserID: userID},
		Title:        title,
		Status:       models.TaskStatusPending,
		Priority:     models.TaskPriorityMedium,
		Tags:         []string{},
		Metadata:     map[string]any{},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestCreateGeneratesDistinctIDs(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))

	first := createTask(t, repo, "u-1", "one")
	second := createTask(t, repo, "u-1", "two")

	if first.ID == "" || second.ID == "" {
		t.Fatal("created tasks must have generated ids")
	}
	if first.ID == second.ID {
		t.Fatalf("ids must be distinct, both %q", first.ID)
	}
}

func TestCreateStampsTimestamps(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	task := createTask(t, repo, "u-1", "stamped")

	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be set on create")
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("created_at %v must equal updated_at %v on create", task.CreatedAt, task.UpdatedAt)
	}
}

func TestGetByIDScopedToOwner(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	task := createTask(t, repo, "u-1", "mine")

	if _, err := repo.GetByID(context.Background(), task.ID, "u-1"); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), task.ID, "u-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other user's read must be not found, got %v", err)
	}
}

func TestListByUserIsolatesUsers(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	createTask(t, repo, "u-1", "a")
	createTask(t, repo, "u-1", "b")
	createTask(t, repo, "u-2", "c")

	tasks, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != "u-1" {
			t.Errorf("leaked task for %q", task.UserID)
		}
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	repo.now = fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	task := createTask(t, repo, "u-1", "keep my title")

	updated, err := repo.Update(context.Background(), task.ID, "u-1", map[string]any{
		"status": "completed",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.TaskStatusCompleted {
		t.Errorf("status: got %q, want completed", updated.Status)
	}
	if updated.Title != "keep my title" {
		t.Errorf("untouched field changed: %q", updated.Title)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Errorf("updated_at must advance: %v -> %v", task.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("created_at must not move: %v -> %v", task.CreatedAt, updated.CreatedAt)
	}
}

func TestUpdateClearsCompletedAtOnExplicitNull(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	task := createTask(t, repo, "u-1", "clearable")

	done, err := repo.Update(context.Background(), task.ID, "u-1", map[string]any{
		"completed_at": "2025-06-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("set completed_at: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("completed_at should be set")
	}

	cleared, err := repo.Update(context.Background(), task.ID, "u-1", map[string]any{
		"completed_at": nil,
	})
	if err != nil {
		t.Fatalf("clear completed_at: %v", err)
	}
	if cleared.CompletedAt != nil {
		t.Errorf("explicit null must clear completed_at, got %v", cleared.CompletedAt)
	}
}

func TestUpdateIgnoresNullForOtherFields(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	desc := "still here"
	task, err := repo.Create(context.Background(), &models.Task{
		BaseDocument: models.BaseDocument{UserID: "u-1"},
		Title:        "nulls",
		Description:  &desc,
		Status:       models.TaskStatusPending,
		Priority:     models.TaskPriorityMedium,
		Tags:         []string{},
		Metadata:     map[string]any{},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(context.Background(), task.ID, "u-1", map[string]any{
		"description": nil,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Errorf("null on a non-clearable field must be a no-op, got %v", updated.Description)
	}
}

func TestUpdateRejectsMalformedTimestamp(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	task := createTask(t, repo, "u-1", "strict")

	_, err := repo.Update(context.Background(), task.ID, "u-1", map[string]any{
		"due_date": "not-a-timestamp",
	})
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("malformed due_date must fail with ErrInvalidField, got %v", err)
	}

	// The bad write must not have poisoned the record.
	stored, err := repo.GetByID(context.Background(), task.ID, "u-1")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored.DueDate != nil {
		t.Errorf("due_date should remain unset, got %v", stored.DueDate)
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	_, err := repo.Update(context.Background(), "no-such-id", "u-1", map[string]any{"status": "completed"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteSemantics(t *testing.T) {
	repo := NewTaskRepository(newTestParams(t))
	task := createTask(t, repo, "u-1", "doomed")

	found, err := repo.Delete(context.Background(), task.ID, "u-1")
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}

	found, err = repo.Delete(context.Background(), task.ID, "u-1")
	if err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
	if found {
		t.Error("second delete must report not found")
	}

	if _, err := repo.GetByID(context.Background(), task.ID, "u-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted task still readable: %v", err)
	}
}
