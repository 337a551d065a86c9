package models

import (
	"testing"
	"time"
)

func TestWeeklyGoalDateRoundTrip(t *testing.T) {
	week := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	parent := "q-1"
	goal := &WeeklyGoal{
		BaseDocument: BaseDocument{ID: "w-1", UserID: "u-1"},
		GoalCommon: GoalCommon{
			Title:              "Ship the feature",
			Status:             GoalStatusInProgress,
			ProgressPercentage: 40,
			KeyMetrics:         []string{"PRs merged"},
		},
		QuarterlyGoalID: &parent,
		WeekStartDate:   &week,
		TaskIDs:         []string{"t-1", "t-2"},
	}

	rec := goal.ToRecord()
	// Week starts serialize as bare dates, not timestamps.
	if rec["week_start_date"] != "2025-06-02" {
		t.Errorf("week_start_date wire form: %v", rec["week_start_date"])
	}

	got, err := WeeklyGoalFromRecord(rec)
	if err != nil {
		t.Fatalf("WeeklyGoalFromRecord: %v", err)
	}
	if got.WeekStartDate == nil || !got.WeekStartDate.Equal(week) {
		t.Errorf("week_start_date round trip: %v", got.WeekStartDate)
	}
	if got.Status != GoalStatusInProgress || got.ProgressPercentage != 40 {
		t.Errorf("common fields round trip: %+v", got.GoalCommon)
	}
	if len(got.TaskIDs) != 2 {
		t.Errorf("task_ids round trip: %v", got.TaskIDs)
	}
}

func TestCreateGoalRequestQuarterBounds(t *testing.T) {
	for _, quarter := range []int{0, 5} {
		req := CreateGoalRequest{Title: "Q goal", UserID: "u-1", TargetQuarter: quarter}
		if err := req.Validate(DocumentTypeQuarterlyGoal); err == nil {
			t.Errorf("quarter %d must fail validation", quarter)
		}
	}

	req := CreateGoalRequest{Title: "Q goal", UserID: "u-1", TargetQuarter: 3}
	if err := req.Validate(DocumentTypeQuarterlyGoal); err != nil {
		t.Errorf("quarter 3 must pass: %v", err)
	}
	// The quarter bound only applies to quarterly goals.
	yearly := CreateGoalRequest{Title: "Y goal", UserID: "u-1"}
	if err := yearly.Validate(DocumentTypeYearlyGoal); err != nil {
		t.Errorf("yearly goal without quarter must pass: %v", err)
	}
}

func TestUpdateGoalRequestProgressBounds(t *testing.T) {
	over := 101
	req := UpdateGoalRequest{ProgressPercentage: &over}
	if err := req.Validate(); err == nil {
		t.Error("progress over 100 must fail")
	}

	ok := 100
	req = UpdateGoalRequest{ProgressPercentage: &ok}
	if err := req.Validate(); err != nil {
		t.Errorf("progress 100 must pass: %v", err)
	}
}
