package models

import (
	"time"

	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is a single actionable item, optionally linked to a project,
// weekly goal or habit.
type Task struct {
	BaseDocument
	Title          string         `json:"title"`
	Description    *string        `json:"description,omitempty"`
	Status         TaskStatus     `json:"status"`
	Priority       TaskPriority   `json:"priority"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	Tags           []string       `json:"tags"`
	ProjectID      *string        `json:"project_id,omitempty"`
	WeeklyGoalID   *string        `json:"weekly_goal_id,omitempty"`
	HabitID        *string        `json:"habit_id,omitempty"`
	EstimatedHours *float64       `json:"estimated_hours,omitempty"`
	ActualHours    *float64       `json:"actual_hours,omitempty"`
	Metadata       map[string]any `json:"metadata"`
}

func (t *Task) Base() *BaseDocument { return &t.BaseDocument }
func (t *Task) Type() DocumentType  { return DocumentTypeTask }

// IsOverdue reports whether the task has a due date in the past and is
// not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

func (t *Task) ToRecord() docstore.Record {
	rec := baseRecord(&t.BaseDocument, DocumentTypeTask)
	rec["title"] = t.Title
	rec["status"] = string(t.Status)
	rec["priority"] = string(t.Priority)
	rec["tags"] = t.Tags
	rec["metadata"] = t.Metadata
	if t.Description != nil {
		rec["description"] = *t.Description
	}
	setTimePtr(rec, "due_date", t.DueDate)
	setTimePtr(rec, "completed_at", t.CompletedAt)
	if t.ProjectID != nil {
		rec["project_id"] = *t.ProjectID
	}
	if t.WeeklyGoalID != nil {
		rec["weekly_goal_id"] = *t.WeeklyGoalID
	}
	if t.HabitID != nil {
		rec["habit_id"] = *t.HabitID
	}
	if t.EstimatedHours != nil {
		rec["estimated_hours"] = *t.EstimatedHours
	}
	if t.ActualHours != nil {
		rec["actual_hours"] = *t.ActualHours
	}
	return rec
}

func TaskFromRecord(rec docstore.Record) (*Task, error) {
	base, err := baseFromRecord(rec, DocumentTypeTask)
	if err != nil {
		return nil, err
	}
	title, err := requireString(rec, "title")
	if err != nil {
		return nil, err
	}

	task := &Task{
		BaseDocument:   base,
		Title:          title,
		Description:    getStringPtr(rec, "description"),
		Status:         TaskStatus(getString(rec, "status")),
		Priority:       TaskPriority(getString(rec, "priority")),
		DueDate:        getTimePtr(rec, "due_date"),
		CompletedAt:    getTimePtr(rec, "completed_at"),
		Tags:           getStringSlice(rec, "tags"),
		ProjectID:      getStringPtr(rec, "project_id"),
		WeeklyGoalID:   getStringPtr(rec, "weekly_goal_id"),
		HabitID:        getStringPtr(rec, "habit_id"),
		EstimatedHours: getFloatPtr(rec, "estimated_hours"),
		ActualHours:    getFloatPtr(rec, "actual_hours"),
		Metadata:       getMap(rec, "metadata"),
	}
	if task.Status == "" {
		task.Status = TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = TaskPriorityMedium
	}
	return task, nil
}

// CreateTaskRequest carries the client-suppliable fields for task
// creation.
type CreateTaskRequest struct {
	Title          string         `json:"title"`
	Description    *string        `json:"description"`
	Priority       TaskPriority   `json:"priority"`
	DueDate        *time.Time     `json:"due_date"`
	Tags           []string       `json:"tags"`
	ProjectID      *string        `json:"project_id"`
	WeeklyGoalID   *string        `json:"weekly_goal_id"`
	HabitID        *string        `json:"habit_id"`
	EstimatedHours *float64       `json:"estimated_hours"`
	Metadata       map[string]any `json:"metadata"`
	UserID         string         `json:"user_id"`
}

func (r *CreateTaskRequest) Validate() error {
	var err error
	if r.Title == "" {
		err = multierr.Append(err, requiredFieldError("title"))
	}
	if r.UserID == "" {
		err = multierr.Append(err, requiredFieldError("user_id"))
	}
	if r.Priority != "" && !r.Priority.Valid() {
		err = multierr.Append(err, invalidFieldError("priority", r.Priority))
	}
	return err
}

// ToTask builds a new task with server-side defaults applied.
func (r *CreateTaskRequest) ToTask() *Task {
	task := &Task{
		BaseDocument:   BaseDocument{UserID: r.UserID},
		Title:          r.Title,
		Description:    r.Description,
		Status:         TaskStatusPending,
		Priority:       r.Priority,
		DueDate:        r.DueDate,
		Tags:           r.Tags,
		ProjectID:      r.ProjectID,
		WeeklyGoalID:   r.WeeklyGoalID,
		HabitID:        r.HabitID,
		EstimatedHours: r.EstimatedHours,
		Metadata:       r.Metadata,
	}
	if task.Priority == "" {
		task.Priority = TaskPriorityMedium
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Metadata == nil {
		task.Metadata = map[string]any{}
	}
	return task
}

// UpdateTaskRequest carries a partial update. Nil pointers leave the
// stored value untouched; completed_at alone may be cleared with an
// explicit null.
type UpdateTaskRequest struct {
	Title          *string        `json:"title"`
	Description    *string        `json:"description"`
	Status         *TaskStatus    `json:"status"`
	Priority       *TaskPriority  `json:"priority"`
	DueDate        *time.Time     `json:"due_date"`
	CompletedAt    NullableTime   `json:"completed_at"`
	Tags           []string       `json:"tags"`
	ProjectID      *string        `json:"project_id"`
	WeeklyGoalID   *string        `json:"weekly_goal_id"`
	HabitID        *string        `json:"habit_id"`
	EstimatedHours *float64       `json:"estimated_hours"`
	ActualHours    *float64       `json:"actual_hours"`
	Metadata       map[string]any `json:"metadata"`
}

func (r *UpdateTaskRequest) Validate() error {
	var err error
	if r.Status != nil && !r.Status.Valid() {
		err = multierr.Append(err, invalidFieldError("status", *r.Status))
	}
	if r.Priority != nil && !r.Priority.Valid() {
		err = multierr.Append(err, invalidFieldError("priority", *r.Priority))
	}
	return err
}

// Updates flattens the set fields into the partial-update map the
// repository consumes.
func (r *UpdateTaskRequest) Updates() map[string]any {
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
	if r.Priority != nil {
		updates["priority"] = string(*r.Priority)
	}
	if r.DueDate != nil {
		updates["due_date"] = FormatTimestamp(*r.DueDate)
	}
	if r.CompletedAt.Present {
		if r.CompletedAt.Valid {
			updates["completed_at"] = FormatTimestamp(r.CompletedAt.Time)
		} else {
			updates["completed_at"] = nil
		}
	}
	if r.Tags != nil {
		updates["tags"] = r.Tags
	}
	if r.ProjectID != nil {
		updates["project_id"] = *r.ProjectID
	}
	if r.WeeklyGoalID != nil {
		updates["weekly_goal_id"] = *r.WeeklyGoalID
	}
	if r.HabitID != nil {
		updates["habit_id"] = *r.HabitID
	}
	if r.EstimatedHours != nil {
		updates["estimated_hours"] = *r.EstimatedHours
	}
	if r.ActualHours != nil {
		updates["actual_hours"] = *r.ActualHours
	}
	if r.Metadata != nil {
		updates["metadata"] = r.Metadata
	}
	return updates
}
