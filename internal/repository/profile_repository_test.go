package repository

import (
	"context"
	"errors"
	"testing"

	"onetask-api/internal/models"
)

func newProfileFixture(t *testing.T) (*UserProfileRepository, *OnboardingRepository, *ChatSessionRepository) {
	t.Helper()
	p := newTestParams(t)
	onboarding := NewOnboardingRepository(p)
	chat := NewChatSessionRepository(p)
	profiles := NewUserProfileRepository(UserProfileParams{
		Store:      p.Store,
		Logger:     p.Logger,
		Onboarding: onboarding,
		Chat:       chat,
	})
	return profiles, onboarding, chat
}

func newProfile(userID string) *models.UserProfile {
	return &models.UserProfile{
		BaseDocument: models.BaseDocument{UserID: userID},
		DisplayName:  "Test User",
		Email:        "test@example.com",
	}
}

func TestProfileCreateRejectsDuplicate(t *testing.T) {
	profiles, _, _ := newProfileFixture(t)

	if _, err := profiles.Create(context.Background(), newProfile("u-1")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := profiles.Create(context.Background(), newProfile("u-1"))
	if !errors.Is(err, ErrProfileExists) {
		t.Fatalf("second create must conflict, got %v", err)
	}
}

func TestProfileCreateSideCreatesOnboarding(t *testing.T) {
	profiles, onboarding, _ := newProfileFixture(t)

	if _, err := profiles.Create(context.Background(), newProfile("u-1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	status, err := onboarding.GetByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("onboarding should exist after profile create: %v", err)
	}
	if status.CurrentStep != models.OnboardingStepWelcome || status.IsCompleted {
		t.Errorf("onboarding not in initial state: %+v", status)
	}
}

func TestProfileUpdateStampsLastActive(t *testing.T) {
	profiles, _, _ := newProfileFixture(t)

	created, err := profiles.Create(context.Background(), newProfile("u-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.LastActive != nil {
		t.Fatalf("last_active should start unset, got %v", created.LastActive)
	}

	name := "Renamed"
	updated, err := profiles.Update(context.Background(), "u-1", map[string]any{"display_name": name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DisplayName != name {
		t.Errorf("display_name: got %q, want %q", updated.DisplayName, name)
	}
	if updated.LastActive == nil {
		t.Error("update must stamp last_active")
	}
}

func TestProfileDeleteCascades(t *testing.T) {
	profiles, onboarding, chat := newProfileFixture(t)
	ctx := context.Background()

	if _, err := profiles.Create(ctx, newProfile("u-1")); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := chat.Create(ctx, "u-1", "first session"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := chat.Create(ctx, "u-1", "second session"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	found, err := profiles.Delete(ctx, "u-1")
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}

	if _, err := profiles.GetByUser(ctx, "u-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("profile should be gone, got %v", err)
	}
	if _, err := onboarding.GetByUser(ctx, "u-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("onboarding should be gone, got %v", err)
	}
	sessions, err := chat.GetRecent(ctx, "u-1", 10)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("chat sessions should be gone, got %d", len(sessions))
	}
}

func TestProfileDeleteAbsent(t *testing.T) {
	profiles, _, _ := newProfileFixture(t)
	found, err := profiles.Delete(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if found {
		t.Error("delete of absent profile must report not found")
	}
}
