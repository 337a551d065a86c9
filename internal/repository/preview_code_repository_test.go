package repository

import (
	"context"
	"testing"
	"time"
)

func TestPreviewCodeValidateAndUseLifecycle(t *testing.T) {
	repo := NewPreviewCodeRepository(newTestParams(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, "ALPHA1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := repo.ValidateAndUse(ctx, "alpha1", "u-1")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid || result.ErrorCode != "" {
		t.Fatalf("first redemption must succeed: %+v", result)
	}

	second, err := repo.ValidateAndUse(ctx, "ALPHA1", "u-2")
	if err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if second.Valid || second.ErrorCode != CodeAlreadyUsed {
		t.Fatalf("second redemption must report already used: %+v", second)
	}

	code, err := repo.Get(ctx, "ALPHA1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !code.IsUsed || code.UsedByUserID == nil || *code.UsedByUserID != "u-1" || code.UsedAt == nil {
		t.Errorf("redemption record incomplete: %+v", code)
	}
}

func TestPreviewCodeValidateUnknown(t *testing.T) {
	repo := NewPreviewCodeRepository(newTestParams(t))

	result, err := repo.ValidateAndUse(context.Background(), "NOPE", "u-1")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid || result.ErrorCode != CodeInvalid {
		t.Fatalf("unknown code must be invalid: %+v", result)
	}
}

func TestPreviewCodeNormalization(t *testing.T) {
	repo := NewPreviewCodeRepository(newTestParams(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "  beta2  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Code != "BETA2" {
		t.Fatalf("code must be stored normalized, got %q", created.Code)
	}
	if _, err := repo.Get(ctx, " beta2 "); err != nil {
		t.Fatalf("lookup with unnormalized input: %v", err)
	}
}

func TestPreviewCodeStats(t *testing.T) {
	repo := NewPreviewCodeRepository(newTestParams(t))
	repo.now = fixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, code := range []string{"A1", "A2", "A3", "A4"} {
		if _, err := repo.Create(ctx, code); err != nil {
			t.Fatalf("create %s: %v", code, err)
		}
	}
	for _, code := range []string{"A1", "A3"} {
		if _, err := repo.ValidateAndUse(ctx, code, "u-1"); err != nil {
			t.Fatalf("use %s: %v", code, err)
		}
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalCodes != 4 || stats.UsedCodes != 2 || stats.RemainingCodes != 2 {
		t.Errorf("counts: %+v", stats)
	}
	if stats.UsageRate != 50.0 {
		t.Errorf("usage rate: got %v, want 50", stats.UsageRate)
	}
	if len(stats.RecentUsage) != 2 {
		t.Fatalf("recent usage: got %d entries", len(stats.RecentUsage))
	}
	if stats.RecentUsage[0].Code != "A3" {
		t.Errorf("recent usage must be newest first: %+v", stats.RecentUsage)
	}
}

func TestPreviewCodeBulkLoadContinuesPastDuplicates(t *testing.T) {
	repo := NewPreviewCodeRepository(newTestParams(t))
	ctx := context.Background()

	result := repo.BulkLoad(ctx, []string{"C1", "C2", "C1", "C3"})
	if result.CreatedCount != 3 {
		t.Errorf("created: got %d, want 3", result.CreatedCount)
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors: got %v, want one duplicate failure", result.Errors)
	}
}

func TestPreviewCodeResetMarkUnused(t *testing.T) {
	repo := NewPreviewCodeRepository(newTestParams(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, "D1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.ValidateAndUse(ctx, "D1", "u-1"); err != nil {
		t.Fatalf("use: %v", err)
	}

	result, err := repo.Reset(ctx, "mark_unused")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if result.AffectedCount != 1 {
		t.Errorf("affected: got %d, want 1", result.AffectedCount)
	}

	code, err := repo.Get(ctx, "D1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if code.IsUsed || code.UsedByUserID != nil || code.UsedAt != nil {
		t.Errorf("code not reset: %+v", code)
	}

	// And it can be redeemed again.
	again, err := repo.ValidateAndUse(ctx, "D1", "u-2")
	if err != nil || !again.Valid {
		t.Fatalf("re-redeem after reset: %+v err=%v", again, err)
	}
}

func TestPreviewCodeResetDeleteAll(t *testing.T) {
	repo := NewPreviewCodeRepository(newTestParams(t))
	ctx := context.Background()

	for _, code := range []string{"E1", "E2"} {
		if _, err := repo.Create(ctx, code); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	result, err := repo.Reset(ctx, "delete_all")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if result.AffectedCount != 2 {
		t.Errorf("affected: got %d, want 2", result.AffectedCount)
	}

	remaining, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("codes remain after delete_all: %d", len(remaining))
	}
}
