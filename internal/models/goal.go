package models

import (
	"time"

	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusPaused     GoalStatus = "paused"
	GoalStatusCancelled  GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusNotStarted, GoalStatusInProgress, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

// GoalCommon holds the fields shared by all three goal horizons.
type GoalCommon struct {
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	Status             GoalStatus `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
	KeyMetrics         []string   `json:"key_metrics"`
}

func (g *GoalCommon) fillRecord(rec docstore.Record) {
	rec["title"] = g.Title
	rec["status"] = string(g.Status)
	rec["progress_percentage"] = g.ProgressPercentage
	rec["key_metrics"] = g.KeyMetrics
	if g.Description != nil {
		rec["description"] = *g.Description
	}
}

func goalCommonFromRecord(rec docstore.Record) (GoalCommon, error) {
	title, err := requireString(rec, "title")
	if err != nil {
		return GoalCommon{}, err
	}
	common := GoalCommon{
		Title:              title,
		Description:        getStringPtr(rec, "description"),
		Status:             GoalStatus(getString(rec, "status")),
		ProgressPercentage: getInt(rec, "progress_percentage"),
		KeyMetrics:         getStringSlice(rec, "key_metrics"),
	}
	if common.Status == "" {
		common.Status = GoalStatusNotStarted
	}
	return common, nil
}

// YearlyGoal is the top of the yearly -> quarterly -> weekly -> task
// hierarchy.
type YearlyGoal struct {
	BaseDocument
	GoalCommon
	TargetYear       int      `json:"target_year"`
	QuarterlyGoalIDs []string `json:"quarterly_goal_ids"`
}

func (g *YearlyGoal) Base() *BaseDocument { return &g.BaseDocument }
func (g *YearlyGoal) Type() DocumentType  { return DocumentTypeYearlyGoal }

func (g *YearlyGoal) ToRecord() docstore.Record {
	rec := baseRecord(&g.BaseDocument, DocumentTypeYearlyGoal)
	g.fillRecord(rec)
	rec["target_year"] = g.TargetYear
	rec["quarterly_goal_ids"] = g.QuarterlyGoalIDs
	return rec
}

func YearlyGoalFromRecord(rec docstore.Record) (*YearlyGoal, error) {
	base, err := baseFromRecord(rec, DocumentTypeYearlyGoal)
	if err != nil {
		return nil, err
	}
	common, err := goalCommonFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &YearlyGoal{
		BaseDocument:     base,
		GoalCommon:       common,
		TargetYear:       getInt(rec, "target_year"),
		QuarterlyGoalIDs: getStringSlice(rec, "quarterly_goal_ids"),
	}, nil
}

// QuarterlyGoal links back to its yearly goal and forward to weekly
// goals.
type QuarterlyGoal struct {
	BaseDocument
	GoalCommon
	YearlyGoalID  *string  `json:"yearly_goal_id,omitempty"`
	TargetYear    int      `json:"target_year"`
	TargetQuarter int      `json:"target_quarter"`
	WeeklyGoalIDs []string `json:"weekly_goal_ids"`
}

func (g *QuarterlyGoal) Base() *BaseDocument { return &g.BaseDocument }
func (g *QuarterlyGoal) Type() DocumentType  { return DocumentTypeQuarterlyGoal }

func (g *QuarterlyGoal) ToRecord() docstore.Record {
	rec := baseRecord(&g.BaseDocument, DocumentTypeQuarterlyGoal)
	g.fillRecord(rec)
	rec["target_year"] = g.TargetYear
	rec["target_quarter"] = g.TargetQuarter
	rec["weekly_goal_ids"] = g.WeeklyGoalIDs
	if g.YearlyGoalID != nil {
		rec["yearly_goal_id"] = *g.YearlyGoalID
	}
	return rec
}

func QuarterlyGoalFromRecord(rec docstore.Record) (*QuarterlyGoal, error) {
	base, err := baseFromRecord(rec, DocumentTypeQuarterlyGoal)
	if err != nil {
		return nil, err
	}
	common, err := goalCommonFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &QuarterlyGoal{
		BaseDocument:  base,
		GoalCommon:    common,
		YearlyGoalID:  getStringPtr(rec, "yearly_goal_id"),
		TargetYear:    getInt(rec, "target_year"),
		TargetQuarter: getInt(rec, "target_quarter"),
		WeeklyGoalIDs: getStringSlice(rec, "weekly_goal_ids"),
	}, nil
}

// WeeklyGoal is the finest goal horizon; tasks link to it.
type WeeklyGoal struct {
	BaseDocument
	GoalCommon
	QuarterlyGoalID *string    `json:"quarterly_goal_id,omitempty"`
	WeekStartDate   *time.Time `json:"week_start_date,omitempty"`
	TaskIDs         []string   `json:"task_ids"`
}

func (g *WeeklyGoal) Base() *BaseDocument { return &g.BaseDocument }
func (g *WeeklyGoal) Type() DocumentType  { return DocumentTypeWeeklyGoal }

func (g *WeeklyGoal) ToRecord() docstore.Record {
	rec := baseRecord(&g.BaseDocument, DocumentTypeWeeklyGoal)
	g.fillRecord(rec)
	rec["task_ids"] = g.TaskIDs
	if g.QuarterlyGoalID != nil {
		rec["quarterly_goal_id"] = *g.QuarterlyGoalID
	}
	setDatePtr(rec, "week_start_date", g.WeekStartDate)
	return rec
}

func WeeklyGoalFromRecord(rec docstore.Record) (*WeeklyGoal, error) {
	base, err := baseFromRecord(rec, DocumentTypeWeeklyGoal)
	if err != nil {
		return nil, err
	}
	common, err := goalCommonFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &WeeklyGoal{
		BaseDocument:    base,
		GoalCommon:      common,
		QuarterlyGoalID: getStringPtr(rec, "quarterly_goal_id"),
		WeekStartDate:   getDatePtr(rec, "week_start_date"),
		TaskIDs:         getStringSlice(rec, "task_ids"),
	}, nil
}

// CreateGoalRequest covers creation for all three goal horizons; the
// horizon-specific fields are optional and validated per route.
type CreateGoalRequest struct {
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	KeyMetrics      []string   `json:"key_metrics"`
	TargetYear      int        `json:"target_year"`
	TargetQuarter   int        `json:"target_quarter"`
	WeekStartDate   *time.Time `json:"week_start_date"`
	YearlyGoalID    *string    `json:"yearly_goal_id"`
	QuarterlyGoalID *string    `json:"quarterly_goal_id"`
	UserID          string     `json:"user_id"`
}

func (r *CreateGoalRequest) Validate(docType DocumentType) error {
	var err error
	if r.Title == "" {
		err = multierr.Append(err, requiredFieldError("title"))
	}
	if r.UserID == "" {
		err = multierr.Append(err, requiredFieldError("user_id"))
	}
	if docType == DocumentTypeQuarterlyGoal && (r.TargetQuarter < 1 || r.TargetQuarter > 4) {
		err = multierr.Append(err, invalidFieldError("target_quarter", r.TargetQuarter))
	}
	return err
}

func (r *CreateGoalRequest) common() GoalCommon {
	metrics := r.KeyMetrics
	if metrics == nil {
		metrics = []string{}
	}
	return GoalCommon{
		Title:       r.Title,
		Description: r.Description,
		Status:      GoalStatusNotStarted,
		KeyMetrics:  metrics,
	}
}

func (r *CreateGoalRequest) ToYearlyGoal() *YearlyGoal {
	return &YearlyGoal{
		BaseDocument:     BaseDocument{UserID: r.UserID},
		GoalCommon:       r.common(),
		TargetYear:       r.TargetYear,
		QuarterlyGoalIDs: []string{},
	}
}

func (r *CreateGoalRequest) ToQuarterlyGoal() *QuarterlyGoal {
	return &QuarterlyGoal{
		BaseDocument:  BaseDocument{UserID: r.UserID},
		GoalCommon:    r.common(),
		YearlyGoalID:  r.YearlyGoalID,
		TargetYear:    r.TargetYear,
		TargetQuarter: r.TargetQuarter,
		WeeklyGoalIDs: []string{},
	}
}

func (r *CreateGoalRequest) ToWeeklyGoal() *WeeklyGoal {
	return &WeeklyGoal{
		BaseDocument:    BaseDocument{UserID: r.UserID},
		GoalCommon:      r.common(),
		QuarterlyGoalID: r.QuarterlyGoalID,
		WeekStartDate:   r.WeekStartDate,
		TaskIDs:         []string{},
	}
}

// UpdateGoalRequest is the partial update for any goal horizon.
type UpdateGoalRequest struct {
	Title              *string     `json:"title"`
	Description        *string     `json:"description"`
	Status             *GoalStatus `json:"status"`
	ProgressPercentage *int        `json:"progress_percentage"`
	KeyMetrics         []string    `json:"key_metrics"`
	TargetYear         *int        `json:"target_year"`
	TargetQuarter      *int        `json:"target_quarter"`
	WeekStartDate      *time.Time  `json:"week_start_date"`
}

func (r *UpdateGoalRequest) Validate() error {
	var err error
	if r.Status != nil && !r.Status.Valid() {
		err = multierr.Append(err, invalidFieldError("status", *r.Status))
	}
	if r.ProgressPercentage != nil && (*r.ProgressPercentage < 0 || *r.ProgressPercentage > 100) {
		err = multierr.Append(err, invalidFieldError("progress_percentage", *r.ProgressPercentage))
	}
	if r.TargetQuarter != nil && (*r.TargetQuarter < 1 || *r.TargetQuarter > 4) {
		err = multierr.Append(err, invalidFieldError("target_quarter", *r.TargetQuarter))
	}
	return err
}

func (r *UpdateGoalRequest) Updates() map[string]any {
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
	if r.ProgressPercentage != nil {
		updates["progress_percentage"] = *r.ProgressPercentage
	}
	if r.KeyMetrics != nil {
		updates["key_metrics"] = r.KeyMetrics
	}
	if r.TargetYear != nil {
		updates["target_year"] = *r.TargetYear
	}
	if r.TargetQuarter != nil {
		updates["target_quarter"] = *r.TargetQuarter
	}
	if r.WeekStartDate != nil {
		updates["week_start_date"] = FormatDate(*r.WeekStartDate)
	}
	return updates
}
