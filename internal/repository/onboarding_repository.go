package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/models"
)

// OnboardingRepository manages the one-per-user onboarding status
// document.
type OnboardingRepository struct {
	store  docstore.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewOnboardingRepository(p Params) *OnboardingRepository {
	return &OnboardingRepository{store: p.Store, logger: p.Logger, now: time.Now}
}

// Create writes the initial onboarding state for a user.
func (r *OnboardingRepository) Create(ctx context.Context, userID string) (*models.OnboardingStatus, error) {
	status := models.NewOnboardingStatus(userID)
	status.ID = uuid.NewString()
	now := r.now().UTC()
	status.CreatedAt = now
	status.UpdatedAt = now

	created, err := r.store.Create(ctx, docstore.CollectionProfiles, userID, status.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("failed to create onboarding status: %w", err)
	}
	return models.OnboardingStatusFromRecord(created)
}

// GetByUser finds the user's onboarding status, or ErrNotFound.
func (r *OnboardingRepository) GetByUser(ctx context.Context, userID string) (*models.OnboardingStatus, error) {
	records, err := r.store.Query(ctx, docstore.CollectionProfiles, docstore.Query{
		PartitionKey: userID,
		Filters: map[string]any{
			"user_id":       userID,
			"document_type": string(models.DocumentTypeOnboardingStatus),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query onboarding status: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return models.OnboardingStatusFromRecord(records[0])
}

// GetOrCreate returns the user's onboarding status, creating the
// initial state on first read.
func (r *OnboardingRepository) GetOrCreate(ctx context.Context, userID string) (*models.OnboardingStatus, error) {
	status, err := r.GetByUser(ctx, userID)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return r.Create(ctx, userID)
}

// UpdateStep sets the current step without enforcing the forward
// progression: any step can be set at any time. completed_steps
// accumulates distinct values, interview data is merged key-by-key into
// the existing responses, and the terminal step marks the whole flow
// complete.
func (r *OnboardingRepository) UpdateStep(ctx context.Context, userID string, step models.OnboardingStep, interviewData map[string]any) (*models.OnboardingStatus, error) {
	status, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	status.CurrentStep = step

	seen := false
	for _, s := range status.CompletedSteps {
		if s == step {
			seen = true
			break
		}
	}
	if !seen {
		status.CompletedSteps = append(status.CompletedSteps, step)
	}

	if interviewData != nil {
		// welcome_shown rides along in interview data but lives on the
		// status itself.
		if shown, ok := interviewData["welcome_shown"].(bool); ok {
			status.WelcomeShown = shown
			delete(interviewData, "welcome_shown")
		}
		for key, value := range interviewData {
			status.InterviewResponses[key] = value
		}
	}

	now := r.now().UTC()
	if step == models.OnboardingStepCompleted {
		status.IsCompleted = true
		status.CompletedAt = &now
	}
	status.UpdatedAt = now

	replaced, err := r.store.Replace(ctx, docstore.CollectionProfiles, status.ID, userID, status.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("failed to replace onboarding status: %w", err)
	}

	r.logger.Info("updated onboarding step",
		zap.String("user_id", userID), zap.String("step", string(step)))
	return models.OnboardingStatusFromRecord(replaced)
}

// Reset returns the record to its initial state. Used by testing and
// support workflows.
func (r *OnboardingRepository) Reset(ctx context.Context, userID string) (*models.OnboardingStatus, error) {
	status, err := r.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return r.Create(ctx, userID)
		}
		return nil, err
	}

	status.CurrentStep = models.OnboardingStepWelcome
	status.CompletedSteps = []models.OnboardingStep{}
	status.IsCompleted = false
	status.CompletedAt = nil
	status.WelcomeShown = false
	status.InterviewResponses = map[string]any{}
	status.UpdatedAt = r.now().UTC()

	replaced, err := r.store.Replace(ctx, docstore.CollectionProfiles, status.ID, userID, status.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("failed to reset onboarding status: %w", err)
	}
	return models.OnboardingStatusFromRecord(replaced)
}

// DeleteByUser removes the user's onboarding status. Absence is not an
// error; cascade deletion treats it as already done.
func (r *OnboardingRepository) DeleteByUser(ctx context.Context, userID string) error {
	status, err := r.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := r.store.Delete(ctx, docstore.CollectionProfiles, status.ID, userID); err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("failed to delete onboarding status: %w", err)
	}
	return nil
}
