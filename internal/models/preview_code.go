package models

import (
	"strings"
	"time"

	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

// PreviewCode is a single-use invitation token. The normalized code
// string is both the document id and the partition value; a code exists
// before any user owns it, so the user_id partitioning rule does not
// apply.
type PreviewCode struct {
	BaseDocument
	Code         string     `json:"code"`
	IsUsed       bool       `json:"is_used"`
	UsedByUserID *string    `json:"used_by_user_id,omitempty"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
}

func (p *PreviewCode) Base() *BaseDocument { return &p.BaseDocument }
func (p *PreviewCode) Type() DocumentType  { return DocumentTypePreviewCode }

// NormalizePreviewCode trims and uppercases a client-supplied code.
func NormalizePreviewCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewPreviewCode builds an unused code owned by the system user until
// redeemed.
func NewPreviewCode(code string) *PreviewCode {
	normalized := NormalizePreviewCode(code)
	return &PreviewCode{
		BaseDocument: BaseDocument{ID: normalized, UserID: "system"},
		Code:         normalized,
	}
}

func (p *PreviewCode) ToRecord() docstore.Record {
	if p.ID == "" {
		p.ID = p.Code
	}
	rec := baseRecord(&p.BaseDocument, DocumentTypePreviewCode)
	rec["code"] = p.Code
	rec["is_used"] = p.IsUsed
	if p.UsedByUserID != nil {
		rec["used_by_user_id"] = *p.UsedByUserID
	}
	setTimePtr(rec, "used_at", p.UsedAt)
	return rec
}

func PreviewCodeFromRecord(rec docstore.Record) (*PreviewCode, error) {
	base, err := baseFromRecord(rec, DocumentTypePreviewCode)
	if err != nil {
		return nil, err
	}
	code, err := requireString(rec, "code")
	if err != nil {
		return nil, err
	}

	return &PreviewCode{
		BaseDocument: base,
		Code:         code,
		IsUsed:       getBool(rec, "is_used"),
		UsedByUserID: getStringPtr(rec, "used_by_user_id"),
		UsedAt:       getTimePtr(rec, "used_at"),
	}, nil
}

type ValidatePreviewCodeRequest struct {
	Code   string `json:"code"`
	UserID string `json:"user_id"`
}

func (r *ValidatePreviewCodeRequest) Validate() error {
	var err error
	if r.Code == "" {
		err = multierr.Append(err, requiredFieldError("code"))
	}
	if r.UserID == "" {
		err = multierr.Append(err, requiredFieldError("user_id"))
	}
	return err
}

type BulkLoadPreviewCodesRequest struct {
	Codes []string `json:"codes"`
}

func (r *BulkLoadPreviewCodesRequest) Validate() error {
	if len(r.Codes) == 0 {
		return requiredFieldError("codes")
	}
	return nil
}

type ResetPreviewCodesRequest struct {
	ResetType string `json:"reset_type"`
}

func (r *ResetPreviewCodesRequest) Validate() error {
	switch r.ResetType {
	case "", "mark_unused", "delete_all":
		return nil
	}
	return invalidFieldError("reset_type", r.ResetType)
}
