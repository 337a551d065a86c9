package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/models"
)

// Common errors
var (
	ErrNotFound     = docstore.ErrNotFound
	ErrInvalidField = errors.New("invalid field value")
)

var Module = fx.Module("repository",
	fx.Provide(
		NewTaskRepository,
		NewYearlyGoalRepository,
		NewQuarterlyGoalRepository,
		NewWeeklyGoalRepository,
		NewHabitRepository,
		NewProjectRepository,
		NewNotesRepository,
		NewFoldersRepository,
		NewOnboardingRepository,
		NewChatSessionRepository,
		NewUserProfileRepository,
		NewPreviewCodeRepository,
	),
)

type Params struct {
	fx.In

	Store  docstore.Store
	Logger *zap.Logger
}

// Repository provides uniform create/read/query/update/delete for one
// document type against its logical collection.
type Repository[T models.Document] struct {
	store      docstore.Store
	logger     *zap.Logger
	docType    models.DocumentType
	collection string
	fromRecord func(docstore.Record) (T, error)
	now        func() time.Time
}

func newRepository[T models.Document](p Params, docType models.DocumentType, fromRecord func(docstore.Record) (T, error)) *Repository[T] {
	return &Repository[T]{
		store:      p.Store,
		logger:     p.Logger,
		docType:    docType,
		collection: models.CollectionFor(docType),
		fromRecord: fromRecord,
		now:        time.Now,
	}
}

func NewTaskRepository(p Params) *Repository[*models.Task] {
	return newRepository(p, models.DocumentTypeTask, models.TaskFromRecord)
}

func NewYearlyGoalRepository(p Params) *Repository[*models.YearlyGoal] {
	return newRepository(p, models.DocumentTypeYearlyGoal, models.YearlyGoalFromRecord)
}

func NewQuarterlyGoalRepository(p Params) *Repository[*models.QuarterlyGoal] {
	return newRepository(p, models.DocumentTypeQuarterlyGoal, models.QuarterlyGoalFromRecord)
}

func NewWeeklyGoalRepository(p Params) *Repository[*models.WeeklyGoal] {
	return newRepository(p, models.DocumentTypeWeeklyGoal, models.WeeklyGoalFromRecord)
}

func NewHabitRepository(p Params) *Repository[*models.Habit] {
	return newRepository(p, models.DocumentTypeHabit, models.HabitFromRecord)
}

func NewProjectRepository(p Params) *Repository[*models.Project] {
	return newRepository(p, models.DocumentTypeProject, models.ProjectFromRecord)
}

// Create assigns an id if absent, stamps both timestamps and inserts.
// The returned entity is round-tripped from what the store echoes.
func (r *Repository[T]) Create(ctx context.Context, doc T) (T, error) {
	var zero T

	base := doc.Base()
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	now := r.now().UTC()
	base.CreatedAt = now
	base.UpdatedAt = now

	created, err := r.store.Create(ctx, r.collection, base.UserID, doc.ToRecord())
	if err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", r.docType, err)
	}

	entity, err := r.fromRecord(created)
	if err != nil {
		return zero, err
	}
	r.logger.Debug("created document",
		zap.String("document_type", string(r.docType)),
		zap.String("id", base.ID))
	return entity, nil
}

// GetByID performs a point read scoped to both id and owning user.
// Absence surfaces as ErrNotFound.
func (r *Repository[T]) GetByID(ctx context.Context, id, userID string) (T, error) {
	var zero T

	rec, err := r.store.Read(ctx, r.collection, id, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to read %s: %w", r.docType, err)
	}
	return r.fromRecord(rec)
}

// ListByUser returns every document of this type for the user. Callers
// apply any further filtering in memory; result sets are small at this
// application's scale.
func (r *Repository[T]) ListByUser(ctx context.Context, userID string) ([]T, error) {
	records, err := r.store.Query(ctx, r.collection, docstore.Query{
		PartitionKey: userID,
		Filters: map[string]any{
			"user_id":       userID,
			"document_type": string(r.docType),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s documents: %w", r.docType, err)
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		entity, err := r.fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// Update performs a read-modify-write. Non-null values overwrite their
// keys, with timestamp and date strings re-parsed as a validation pass.
// An explicit null clears its key only for the one field with that
// semantic; other nulls are ignored. updated_at is always stamped. The
// read-replace pair is not guarded by a concurrency token; concurrent
// writers can lose updates, accepted for this single-editor usage
// pattern.
func (r *Repository[T]) Update(ctx context.Context, id, userID string, updates map[string]any) (T, error) {
	var zero T

	rec, err := r.store.Read(ctx, r.collection, id, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to read %s for update: %w", r.docType, err)
	}

	for key, value := range updates {
		if value == nil {
			if models.IsClearableField(r.docType, key) {
				delete(rec, key)
			}
			continue
		}
		coerced, err := r.coerceValue(key, value)
		if err != nil {
			return zero, err
		}
		rec[key] = coerced
	}
	rec["updated_at"] = models.FormatTimestamp(r.now().UTC())
	rec["document_type"] = string(r.docType)

	replaced, err := r.store.Replace(ctx, r.collection, id, userID, rec)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to replace %s: %w", r.docType, err)
	}
	return r.fromRecord(replaced)
}

// coerceValue re-validates timestamp and date fields: the incoming
// string (or time) is parsed then re-stringified, so malformed values
// fail here instead of poisoning the stored record.
func (r *Repository[T]) coerceValue(key string, value any) (any, error) {
	switch {
	case models.IsTimestampField(r.docType, key):
		switch v := value.(type) {
		case string:
			t, err := models.ParseTimestamp(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, key, err)
			}
			return models.FormatTimestamp(t), nil
		case time.Time:
			return models.FormatTimestamp(v), nil
		}
		return nil, fmt.Errorf("%w: %s must be a timestamp string", ErrInvalidField, key)
	case models.IsDateField(r.docType, key):
		switch v := value.(type) {
		case string:
			t, err := models.ParseDate(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, key, err)
			}
			return models.FormatDate(t), nil
		case time.Time:
			return models.FormatDate(v), nil
		}
		return nil, fmt.Errorf("%w: %s must be a date string", ErrInvalidField, key)
	}
	return value, nil
}

// Delete removes the document. Returns false (without error) when the
// id/user pair does not exist.
func (r *Repository[T]) Delete(ctx context.Context, id, userID string) (bool, error) {
	err := r.store.Delete(ctx, r.collection, id, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s: %w", r.docType, err)
	}
	return true, nil
}
