package models

import (
	"time"

	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project groups tasks and may link up to a parent goal.
type Project struct {
	BaseDocument
	Title              string        `json:"title"`
	Description        *string       `json:"description,omitempty"`
	Status             ProjectStatus `json:"status"`
	Priority           TaskPriority  `json:"priority"`
	StartDate          *time.Time    `json:"start_date,omitempty"`
	EndDate            *time.Time    `json:"end_date,omitempty"`
	ProgressPercentage int           `json:"progress_percentage"`
	Tags               []string      `json:"tags"`
	TaskIDs            []string      `json:"task_ids"`
	YearlyGoalID       *string       `json:"yearly_goal_id,omitempty"`
	QuarterlyGoalID    *string       `json:"quarterly_goal_id,omitempty"`
}

func (p *Project) Base() *BaseDocument { return &p.BaseDocument }
func (p *Project) Type() DocumentType  { return DocumentTypeProject }

func (p *Project) ToRecord() docstore.Record {
	rec := baseRecord(&p.BaseDocument, DocumentTypeProject)
	rec["title"] = p.Title
	rec["status"] = string(p.Status)
	rec["priority"] = string(p.Priority)
	rec["progress_percentage"] = p.ProgressPercentage
	rec["tags"] = p.Tags
	rec["task_ids"] = p.TaskIDs
	if p.Description != nil {
		rec["description"] = *p.Description
	}
	setDatePtr(rec, "start_date", p.StartDate)
	setDatePtr(rec, "end_date", p.EndDate)
	if p.YearlyGoalID != nil {
		rec["yearly_goal_id"] = *p.YearlyGoalID
	}
	if p.QuarterlyGoalID != nil {
		rec["quarterly_goal_id"] = *p.QuarterlyGoalID
	}
	return rec
}

func ProjectFromRecord(rec docstore.Record) (*Project, error) {
	base, err := baseFromRecord(rec, DocumentTypeProject)
	if err != nil {
		return nil, err
	}
	title, err := requireString(rec, "title")
	if err != nil {
		return nil, err
	}

	project := &Project{
		BaseDocument:       base,
		Title:              title,
		Description:        getStringPtr(rec, "description"),
		Status:             ProjectStatus(getString(rec, "status")),
		Priority:           TaskPriority(getString(rec, "priority")),
		StartDate:          getDatePtr(rec, "start_date"),
		EndDate:            getDatePtr(rec, "end_date"),
		ProgressPercentage: getInt(rec, "progress_percentage"),
		Tags:               getStringSlice(rec, "tags"),
		TaskIDs:            getStringSlice(rec, "task_ids"),
		YearlyGoalID:       getStringPtr(rec, "yearly_goal_id"),
		QuarterlyGoalID:    getStringPtr(rec, "quarterly_goal_id"),
	}
	if project.Status == "" {
		project.Status = ProjectStatusPlanning
	}
	if project.Priority == "" {
		project.Priority = TaskPriorityMedium
	}
	return project, nil
}

type CreateProjectRequest struct {
	Title           string       `json:"title"`
	Description     *string      `json:"description"`
	Priority        TaskPriority `json:"priority"`
	StartDate       *time.Time   `json:"start_date"`
	EndDate         *time.Time   `json:"end_date"`
	Tags            []string     `json:"tags"`
	YearlyGoalID    *string      `json:"yearly_goal_id"`
	QuarterlyGoalID *string      `json:"quarterly_goal_id"`
	UserID          string       `json:"user_id"`
}

func (r *CreateProjectRequest) Validate() error {
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

func (r *CreateProjectRequest) ToProject() *Project {
	project := &Project{
		BaseDocument:    BaseDocument{UserID: r.UserID},
		Title:           r.Title,
		Description:     r.Description,
		Status:          ProjectStatusPlanning,
		Priority:        r.Priority,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Tags:            r.Tags,
		TaskIDs:         []string{},
		YearlyGoalID:    r.YearlyGoalID,
		QuarterlyGoalID: r.QuarterlyGoalID,
	}
	if project.Priority == "" {
		project.Priority = TaskPriorityMedium
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}
	return project
}

type UpdateProjectRequest struct {
	Title              *string        `json:"title"`
	Description        *string        `json:"description"`
	Status             *ProjectStatus `json:"status"`
	Priority           *TaskPriority  `json:"priority"`
	StartDate          *time.Time     `json:"start_date"`
	EndDate            *time.Time     `json:"end_date"`
	ProgressPercentage *int           `json:"progress_percentage"`
	Tags               []string       `json:"tags"`
	TaskIDs            []string       `json:"task_ids"`
}

func (r *UpdateProjectRequest) Validate() error {
	var err error
	if r.Status != nil && !r.Status.Valid() {
		err = multierr.Append(err, invalidFieldError("status", *r.Status))
	}
	if r.Priority != nil && !r.Priority.Valid() {
		err = multierr.Append(err, invalidFieldError("priority", *r.Priority))
	}
	if r.ProgressPercentage != nil && (*r.ProgressPercentage < 0 || *r.ProgressPercentage > 100) {
		err = multierr.Append(err, invalidFieldError("progress_percentage", *r.ProgressPercentage))
	}
	return err
}

func (r *UpdateProjectRequest) Updates() map[string]any {
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
	if r.StartDate != nil {
		updates["start_date"] = FormatDate(*r.StartDate)
	}
	if r.EndDate != nil {
		updates["end_date"] = FormatDate(*r.EndDate)
	}
	if r.ProgressPercentage != nil {
		updates["progress_percentage"] = *r.ProgressPercentage
	}
	if r.Tags != nil {
		updates["tags"] = r.Tags
	}
	if r.TaskIDs != nil {
		updates["task_ids"] = r.TaskIDs
	}
	return updates
}
