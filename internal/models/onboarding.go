package models

import (
	"time"

	"onetask-api/internal/docstore"
)

// OnboardingStep is one stage of the first-run setup flow. The flow is
// linear by convention only; any step may be set at any time.
type OnboardingStep string

const (
	OnboardingStepWelcome      OnboardingStep = "welcome"
	OnboardingStepProfileSetup OnboardingStep = "profile_setup"
	OnboardingStepPreferences  OnboardingStep = "preferences"
	OnboardingStepFirstTask    OnboardingStep = "first_task"
	OnboardingStepCompleted    OnboardingStep = "completed"
)

func (s OnboardingStep) Valid() bool {
	switch s {
	case OnboardingStepWelcome, OnboardingStepProfileSetup, OnboardingStepPreferences,
		OnboardingStepFirstTask, OnboardingStepCompleted:
		return true
	}
	return false
}

// OnboardingStatus tracks a user's progress through first-run setup.
// interview_responses accumulates across step updates; each update
// merges new keys into the map.
type OnboardingStatus struct {
	BaseDocument
	CurrentStep        OnboardingStep   `json:"current_step"`
	CompletedSteps     []OnboardingStep `json:"completed_steps"`
	IsCompleted        bool             `json:"is_completed"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	WelcomeShown       bool             `json:"welcome_shown"`
	InterviewResponses map[string]any   `json:"interview_responses"`
}

func (o *OnboardingStatus) Base() *BaseDocument { return &o.BaseDocument }
func (o *OnboardingStatus) Type() DocumentType  { return DocumentTypeOnboardingStatus }

// NewOnboardingStatus returns the initial onboarding state for a user.
func NewOnboardingStatus(userID string) *OnboardingStatus {
	return &OnboardingStatus{
		BaseDocument:       BaseDocument{UserID: userID},
		CurrentStep:        OnboardingStepWelcome,
		CompletedSteps:     []OnboardingStep{},
		InterviewResponses: map[string]any{},
	}
}

func (o *OnboardingStatus) ToRecord() docstore.Record {
	rec := baseRecord(&o.BaseDocument, DocumentTypeOnboardingStatus)
	steps := make([]string, 0, len(o.CompletedSteps))
	for _, s := range o.CompletedSteps {
		steps = append(steps, string(s))
	}
	rec["current_step"] = string(o.CurrentStep)
	rec["completed_steps"] = steps
	rec["is_completed"] = o.IsCompleted
	rec["welcome_shown"] = o.WelcomeShown
	rec["interview_responses"] = o.InterviewResponses
	setTimePtr(rec, "completed_at", o.CompletedAt)
	return rec
}

func OnboardingStatusFromRecord(rec docstore.Record) (*OnboardingStatus, error) {
	base, err := baseFromRecord(rec, DocumentTypeOnboardingStatus)
	if err != nil {
		return nil, err
	}

	rawSteps := getStringSlice(rec, "completed_steps")
	steps := make([]OnboardingStep, 0, len(rawSteps))
	for _, s := range rawSteps {
		steps = append(steps, OnboardingStep(s))
	}

	status := &OnboardingStatus{
		BaseDocument:       base,
		CurrentStep:        OnboardingStep(getString(rec, "current_step")),
		CompletedSteps:     steps,
		IsCompleted:        getBool(rec, "is_completed"),
		CompletedAt:        getTimePtr(rec, "completed_at"),
		WelcomeShown:       getBool(rec, "welcome_shown"),
		InterviewResponses: getMap(rec, "interview_responses"),
	}
	if status.CurrentStep == "" {
		status.CurrentStep = OnboardingStepWelcome
	}
	return status, nil
}

// UpdateOnboardingStepRequest sets the current step and optionally
// contributes interview data to merge.
type UpdateOnboardingStepRequest struct {
	Step          OnboardingStep `json:"step"`
	InterviewData map[string]any `json:"interview_data"`
}

func (r *UpdateOnboardingStepRequest) Validate() error {
	if r.Step == "" {
		return requiredFieldError("step")
	}
	if !r.Step.Valid() {
		return invalidFieldError("step", r.Step)
	}
	return nil
}
