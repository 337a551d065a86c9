package models

import (
	"time"

	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

type HabitStatus string

const (
	HabitStatusActive    HabitStatus = "active"
	HabitStatusPaused    HabitStatus = "paused"
	HabitStatusCompleted HabitStatus = "completed"
	HabitStatusArchived  HabitStatus = "archived"
)

func (s HabitStatus) Valid() bool {
	switch s {
	case HabitStatusActive, HabitStatusPaused, HabitStatusCompleted, HabitStatusArchived:
		return true
	}
	return false
}

type HabitFrequency string

const (
	HabitFrequencyDaily   HabitFrequency = "daily"
	HabitFrequencyWeekly  HabitFrequency = "weekly"
	HabitFrequencyMonthly HabitFrequency = "monthly"
	HabitFrequencyCustom  HabitFrequency = "custom"
)

func (f HabitFrequency) Valid() bool {
	switch f {
	case HabitFrequencyDaily, HabitFrequencyWeekly, HabitFrequencyMonthly, HabitFrequencyCustom:
		return true
	}
	return false
}

// Habit tracks a recurring practice and its streak counters.
type Habit struct {
	BaseDocument
	Title            string         `json:"title"`
	Description      *string        `json:"description,omitempty"`
	Status           HabitStatus    `json:"status"`
	Frequency        HabitFrequency `json:"frequency"`
	TargetCount      int            `json:"target_count"`
	CurrentCount     int            `json:"current_count"`
	CurrentStreak    int            `json:"current_streak"`
	LongestStreak    int            `json:"longest_streak"`
	TotalCompletions int            `json:"total_completions"`
	LastCompletedAt  *time.Time     `json:"last_completed_at,omitempty"`
	ReminderTime     *string        `json:"reminder_time,omitempty"`
	Tags             []string       `json:"tags"`
	Metadata         map[string]any `json:"metadata"`
}

func (h *Habit) Base() *BaseDocument { return &h.BaseDocument }
func (h *Habit) Type() DocumentType  { return DocumentTypeHabit }

func (h *Habit) ToRecord() docstore.Record {
	rec := baseRecord(&h.BaseDocument, DocumentTypeHabit)
	rec["title"] = h.Title
	rec["status"] = string(h.Status)
	rec["frequency"] = string(h.Frequency)
	rec["target_count"] = h.TargetCount
	rec["current_count"] = h.CurrentCount
	rec["current_streak"] = h.CurrentStreak
	rec["longest_streak"] = h.LongestStreak
	rec["total_completions"] = h.TotalCompletions
	rec["tags"] = h.Tags
	rec["metadata"] = h.Metadata
	if h.Description != nil {
		rec["description"] = *h.Description
	}
	setTimePtr(rec, "last_completed_at", h.LastCompletedAt)
	if h.ReminderTime != nil {
		rec["reminder_time"] = *h.ReminderTime
	}
	return rec
}

// migrateLegacyHabitRecord lifts frequency, target_count and
// reminder_time out of the free-form metadata map when records written
// by earlier schema versions stored them there. Runs once at load time;
// steady-state records pass through unchanged.
func migrateLegacyHabitRecord(rec docstore.Record) docstore.Record {
	meta, ok := rec["metadata"].(map[string]any)
	if !ok {
		return rec
	}
	for _, field := range []string{"frequency", "target_count", "reminder_time"} {
		if _, present := rec[field]; present {
			continue
		}
		if legacy, present := meta[field]; present {
			rec[field] = legacy
		}
	}
	return rec
}

func HabitFromRecord(rec docstore.Record) (*Habit, error) {
	rec = migrateLegacyHabitRecord(rec)

	base, err := baseFromRecord(rec, DocumentTypeHabit)
	if err != nil {
		return nil, err
	}
	title, err := requireString(rec, "title")
	if err != nil {
		return nil, err
	}

	habit := &Habit{
		BaseDocument:     base,
		Title:            title,
		Description:      getStringPtr(rec, "description"),
		Status:           HabitStatus(getString(rec, "status")),
		Frequency:        HabitFrequency(getString(rec, "frequency")),
		TargetCount:      getInt(rec, "target_count"),
		CurrentCount:     getInt(rec, "current_count"),
		CurrentStreak:    getInt(rec, "current_streak"),
		LongestStreak:    getInt(rec, "longest_streak"),
		TotalCompletions: getInt(rec, "total_completions"),
		LastCompletedAt:  getTimePtr(rec, "last_completed_at"),
		ReminderTime:     getStringPtr(rec, "reminder_time"),
		Tags:             getStringSlice(rec, "tags"),
		Metadata:         getMap(rec, "metadata"),
	}
	if habit.Status == "" {
		habit.Status = HabitStatusActive
	}
	if habit.Frequency == "" {
		habit.Frequency = HabitFrequencyDaily
	}
	return habit, nil
}

type CreateHabitRequest struct {
	Title        string         `json:"title"`
	Description  *string        `json:"description"`
	Frequency    HabitFrequency `json:"frequency"`
	TargetCount  int            `json:"target_count"`
	ReminderTime *string        `json:"reminder_time"`
	Tags         []string       `json:"tags"`
	Metadata     map[string]any `json:"metadata"`
	UserID       string         `json:"user_id"`
}

func (r *CreateHabitRequest) Validate() error {
	var err error
	if r.Title == "" {
		err = multierr.Append(err, requiredFieldError("title"))
	}
	if r.UserID == "" {
		err = multierr.Append(err, requiredFieldError("user_id"))
	}
	if r.Frequency != "" && !r.Frequency.Valid() {
		err = multierr.Append(err, invalidFieldError("frequency", r.Frequency))
	}
	return err
}

func (r *CreateHabitRequest) ToHabit() *Habit {
	habit := &Habit{
		BaseDocument: BaseDocument{UserID: r.UserID},
		Title:        r.Title,
		Description:  r.Description,
		Status:       HabitStatusActive,
		Frequency:    r.Frequency,
		TargetCount:  r.TargetCount,
		ReminderTime: r.ReminderTime,
		Tags:         r.Tags,
		Metadata:     r.Metadata,
	}
	if habit.Frequency == "" {
		habit.Frequency = HabitFrequencyDaily
	}
	if habit.TargetCount == 0 {
		habit.TargetCount = 1
	}
	if habit.Tags == nil {
		habit.Tags = []string{}
	}
	if habit.Metadata == nil {
		habit.Metadata = map[string]any{}
	}
	return habit
}

type UpdateHabitRequest struct {
	Title            *string         `json:"title"`
	Description      *string         `json:"description"`
	Status           *HabitStatus    `json:"status"`
	Frequency        *HabitFrequency `json:"frequency"`
	TargetCount      *int            `json:"target_count"`
	CurrentCount     *int            `json:"current_count"`
	CurrentStreak    *int            `json:"current_streak"`
	LongestStreak    *int            `json:"longest_streak"`
	TotalCompletions *int            `json:"total_completions"`
	LastCompletedAt  *time.Time      `json:"last_completed_at"`
	ReminderTime     *string         `json:"reminder_time"`
	Tags             []string        `json:"tags"`
	Metadata         map[string]any  `json:"metadata"`
}

func (r *UpdateHabitRequest) Validate() error {
	var err error
	if r.Status != nil && !r.Status.Valid() {
		err = multierr.Append(err, invalidFieldError("status", *r.Status))
	}
	if r.Frequency != nil && !r.Frequency.Valid() {
		err = multierr.Append(err, invalidFieldError("frequency", *r.Frequency))
	}
	return err
}

func (r *UpdateHabitRequest) Updates() map[string]any {
	updates := map[string]any{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Status != nil {
		updates["status"] = string(*r.Status)
	}
	if r.Frequency != nil {
		updates["frequency"] = string(*r.Frequency)
	}
	if r.TargetCount != nil {
		updates["target_count"] = *r.TargetCount
	}
	if r.CurrentCount != nil {
		updates["current_count"] = *r.CurrentCount
	}
	if r.CurrentStreak != nil {
		updates["current_streak"] = *r.CurrentStreak
	}
	if r.LongestStreak != nil {
		updates["longest_streak"] = *r.LongestStreak
	}
	if r.TotalCompletions != nil {
		updates["total_completions"] = *r.TotalCompletions
	}
	if r.LastCompletedAt != nil {
		updates["last_completed_at"] = FormatTimestamp(*r.LastCompletedAt)
	}
	if r.ReminderTime != nil {
		updates["reminder_time"] = *r.ReminderTime
	}
	if r.Tags != nil {
		updates["tags"] = r.Tags
	}
	if r.Metadata != nil {
		updates["metadata"] = r.Metadata
	}
	return updates
}
