package models

import (
	"errors"
	"time"

	"onetask-api/internal/docstore"
)

// Common errors
var (
	ErrMissingField = errors.New("missing required field")
)

// DocumentType discriminates the stored entity kinds. Immutable after
// creation; handlers force the value implied by the route.
type DocumentType string

const (
	DocumentTypeTask             DocumentType = "task"
	DocumentTypeYearlyGoal       DocumentType = "yearly_goal"
	DocumentTypeQuarterlyGoal    DocumentType = "quarterly_goal"
	DocumentTypeWeeklyGoal       DocumentType = "weekly_goal"
	DocumentTypeHabit            DocumentType = "habit"
	DocumentTypeProject          DocumentType = "project"
	DocumentTypeUserProfile      DocumentType = "user_profile"
	DocumentTypeOnboardingStatus DocumentType = "onboarding_status"
	DocumentTypeChatSession      DocumentType = "chat_session"
	DocumentTypePreviewCode      DocumentType = "preview_code"
	DocumentTypeNote             DocumentType = "note"
	DocumentTypeFolder           DocumentType = "folder"
)

// CollectionFor maps a document type to its logical collection.
func CollectionFor(docType DocumentType) string {
	switch docType {
	case DocumentTypeUserProfile, DocumentTypeOnboardingStatus, DocumentTypeChatSession:
		return docstore.CollectionProfiles
	case DocumentTypePreviewCode:
		return docstore.CollectionPreviewCodes
	default:
		return docstore.CollectionDocuments
	}
}

// BaseDocument carries the fields every persisted entity shares.
// (id, user_id) uniquely identifies a document; user_id is the
// partition key for every type except preview codes.
type BaseDocument struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document is implemented by every entity the generic repository manages.
type Document interface {
	Base() *BaseDocument
	Type() DocumentType
	ToRecord() docstore.Record
}

// timestampFields names, per document type, the record fields stored as
// ISO-8601 timestamp strings (beyond created_at/updated_at, which apply
// to every type).
var timestampFields = map[DocumentType][]string{
	DocumentTypeTask:             {"due_date", "completed_at"},
	DocumentTypeHabit:            {"last_completed_at"},
	DocumentTypeUserProfile:      {"last_active"},
	DocumentTypeOnboardingStatus: {"completed_at"},
	DocumentTypePreviewCode:      {"used_at"},
}

// dateFields names the record fields stored as ISO-8601 calendar dates.
var dateFields = map[DocumentType][]string{
	DocumentTypeWeeklyGoal:  {"week_start_date"},
	DocumentTypeProject:     {"start_date", "end_date"},
	DocumentTypeChatSession: {"session_date"},
}

// IsTimestampField reports whether field holds an ISO-8601 timestamp for
// the given document type.
func IsTimestampField(docType DocumentType, field string) bool {
	if field == "created_at" || field == "updated_at" {
		return true
	}
	for _, f := range timestampFields[docType] {
		if f == field {
			return true
		}
	}
	return false
}

// IsDateField reports whether field holds an ISO-8601 calendar date for
// the given document type.
func IsDateField(docType DocumentType, field string) bool {
	for _, f := range dateFields[docType] {
		if f == field {
			return true
		}
	}
	return false
}

// IsClearableField reports whether an explicit null in an update clears
// the field. The task completion timestamp is the only field with this
// semantic; every other null is a no-op.
func IsClearableField(docType DocumentType, field string) bool {
	return docType == DocumentTypeTask && field == "completed_at"
}
