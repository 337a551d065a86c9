package models

import (
	"testing"
)

func TestHabitLegacyMetadataMigration(t *testing.T) {
	rec := map[string]any{
		"id":            "h-1",
		"user_id":       "u-1",
		"document_type": "habit",
		"title":         "Meditate",
		"metadata": map[string]any{
			"frequency":     "weekly",
			"target_count":  float64(3),
			"reminder_time": "07:30",
			"color":         "blue",
		},
	}

	habit, err := HabitFromRecord(rec)
	if err != nil {
		t.Fatalf("HabitFromRecord: %v", err)
	}
	if habit.Frequency != HabitFrequencyWeekly {
		t.Errorf("frequency not lifted from metadata: got %q", habit.Frequency)
	}
	if habit.TargetCount != 3 {
		t.Errorf("target_count not lifted from metadata: got %d", habit.TargetCount)
	}
	if habit.ReminderTime == nil || *habit.ReminderTime != "07:30" {
		t.Errorf("reminder_time not lifted from metadata: got %v", habit.ReminderTime)
	}
	// Unrelated metadata stays where it was.
	if habit.Metadata["color"] != "blue" {
		t.Errorf("metadata lost unrelated key: %v", habit.Metadata)
	}
}

func TestHabitMigrationDoesNotOverwriteTopLevel(t *testing.T) {
	rec := map[string]any{
		"id":            "h-1",
		"user_id":       "u-1",
		"document_type": "habit",
		"title":         "Run",
		"frequency":     "monthly",
		"metadata": map[string]any{
			"frequency": "daily",
		},
	}

	habit, err := HabitFromRecord(rec)
	if err != nil {
		t.Fatalf("HabitFromRecord: %v", err)
	}
	if habit.Frequency != HabitFrequencyMonthly {
		t.Errorf("top-level frequency must win: got %q", habit.Frequency)
	}
}

func TestHabitDefaults(t *testing.T) {
	rec := map[string]any{
		"id":            "h-1",
		"user_id":       "u-1",
		"document_type": "habit",
		"title":         "Read",
	}

	habit, err := HabitFromRecord(rec)
	if err != nil {
		t.Fatalf("HabitFromRecord: %v", err)
	}
	if habit.Frequency != HabitFrequencyDaily {
		t.Errorf("frequency default: got %q, want %q", habit.Frequency, HabitFrequencyDaily)
	}
	if habit.Status != HabitStatusActive {
		t.Errorf("status default: got %q, want %q", habit.Status, HabitStatusActive)
	}
}
