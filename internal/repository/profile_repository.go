package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/models"
)

// ErrProfileExists signals a create attempt for a user that already has
// a profile. Handlers surface it as a conflict.
var ErrProfileExists = errors.New("user profile already exists")

type UserProfileParams struct {
	fx.In

	Store      docstore.Store
	Logger     *zap.Logger
	Onboarding *OnboardingRepository
	Chat       *ChatSessionRepository
}

// UserProfileRepository manages the one-per-user profile document.
type UserProfileRepository struct {
	store      docstore.Store
	logger     *zap.Logger
	onboarding *OnboardingRepository
	chat       *ChatSessionRepository
	now        func() time.Time
}

func NewUserProfileRepository(p UserProfileParams) *UserProfileRepository {
	return &UserProfileRepository{
		store:      p.Store,
		logger:     p.Logger,
		onboarding: p.Onboarding,
		chat:       p.Chat,
		now:        time.Now,
	}
}

// Create rejects a second profile for the same user, then writes the
// profile and an initial onboarding status. The two writes are not
// transactional; a profile without onboarding state is an accepted
// inconsistency if the second write fails.
func (r *UserProfileRepository) Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	existing, err := r.GetByUser(ctx, profile.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileExists, profile.UserID)
	}

	now := r.now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	created, err := r.store.Create(ctx, docstore.CollectionProfiles, profile.UserID, profile.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if _, err := r.onboarding.Create(ctx, profile.UserID); err != nil {
		r.logger.Error("failed to create initial onboarding status",
			zap.String("user_id", profile.UserID), zap.Error(err))
	}

	r.logger.Info("created user profile", zap.String("user_id", profile.UserID))
	return models.UserProfileFromRecord(created)
}

// GetByUser looks the profile up by owner; profiles are found by query
// since their document id is not known to callers.
func (r *UserProfileRepository) GetByUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	records, err := r.store.Query(ctx, docstore.CollectionProfiles, docstore.Query{
		PartitionKey: userID,
		Filters: map[string]any{
			"user_id":       userID,
			"document_type": string(models.DocumentTypeUserProfile),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return models.UserProfileFromRecord(records[0])
}

// Update merges the provided fields and stamps both updated_at and
// last_active.
func (r *UserProfileRepository) Update(ctx context.Context, userID string, updates map[string]any) (*models.UserProfile, error) {
	profile, err := r.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := profile.ToRecord()
	for key, value := range updates {
		if value == nil {
			continue
		}
		rec[key] = value
	}
	now := models.FormatTimestamp(r.now().UTC())
	rec["updated_at"] = now
	rec["last_active"] = now

	replaced, err := r.store.Replace(ctx, docstore.CollectionProfiles, profile.ID, userID, rec)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to replace profile: %w", err)
	}
	return models.UserProfileFromRecord(replaced)
}

// Delete removes the profile and cascades to onboarding status and all
// chat sessions. The first failing step aborts the rest.
func (r *UserProfileRepository) Delete(ctx context.Context, userID string) (bool, error) {
	profile, err := r.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := r.store.Delete(ctx, docstore.CollectionProfiles, profile.ID, userID); err != nil {
		return false, fmt.Errorf("failed to delete profile: %w", err)
	}
	if err := r.onboarding.DeleteByUser(ctx, userID); err != nil {
		return false, err
	}
	if err := r.chat.DeleteAllForUser(ctx, userID); err != nil {
		return false, err
	}

	r.logger.Info("deleted user profile and associated data", zap.String("user_id", userID))
	return true, nil
}
