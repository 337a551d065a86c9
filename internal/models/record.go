package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
)

const dateLayout = "2006-01-02"

// Layouts accepted for stored timestamps. Records written by earlier
// schema versions carry naive (offset-less) timestamps, so those parse
// too.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	dateLayout,
}

// ParseTimestamp parses a stored ISO-8601 timestamp string.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %q", value)
}

// ParseDate parses a stored ISO-8601 calendar date string.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	// Legacy records stored some dates as full timestamps.
	t, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %q", value)
	}
	return t.Truncate(24 * time.Hour), nil
}

// FormatTimestamp renders a timestamp in its stored ISO-8601 form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FormatDate renders a calendar date in its stored ISO-8601 form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// baseRecord starts a storage record from the shared fields. A missing
// id is generated here so the store never receives a record without an
// identifier.
func baseRecord(b *BaseDocument, docType DocumentType) docstore.Record {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	rec := docstore.Record{
		"id":            b.ID,
		"user_id":       b.UserID,
		"document_type": string(docType),
	}
	setTime(rec, "created_at", b.CreatedAt)
	setTime(rec, "updated_at", b.UpdatedAt)
	return rec
}

// baseFromRecord loads the shared fields. user_id is required for every
// type except preview codes, which carry their own partition value.
func baseFromRecord(rec docstore.Record, docType DocumentType) (BaseDocument, error) {
	userID, err := requireString(rec, "user_id")
	if err != nil && docType != DocumentTypePreviewCode {
		return BaseDocument{}, err
	}
	return BaseDocument{
		ID:        getString(rec, "id"),
		UserID:    userID,
		CreatedAt: getTime(rec, "created_at"),
		UpdatedAt: getTime(rec, "updated_at"),
	}, nil
}

func setTime(rec docstore.Record, key string, t time.Time) {
	if !t.IsZero() {
		rec[key] = FormatTimestamp(t)
	}
}

func setTimePtr(rec docstore.Record, key string, t *time.Time) {
	if t != nil {
		rec[key] = FormatTimestamp(*t)
	}
}

func setDatePtr(rec docstore.Record, key string, t *time.Time) {
	if t != nil {
		rec[key] = FormatDate(*t)
	}
}

// getTime reads a timestamp field, dropping malformed values instead of
// failing so the rest of the record stays available.
func getTime(rec docstore.Record, key string) time.Time {
	s, ok := rec[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		zap.L().Warn("dropping unparseable timestamp field",
			zap.String("field", key), zap.String("value", s))
		return time.Time{}
	}
	return t
}

func getTimePtr(rec docstore.Record, key string) *time.Time {
	t := getTime(rec, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func getDatePtr(rec docstore.Record, key string) *time.Time {
	s, ok := rec[key].(string)
	if !ok {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		zap.L().Warn("dropping unparseable date field",
			zap.String("field", key), zap.String("value", s))
		return nil
	}
	return &t
}

func getString(rec docstore.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

func requireString(rec docstore.Record, key string) (string, error) {
	s, ok := rec[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return s, nil
}

func getStringPtr(rec docstore.Record, key string) *string {
	if s, ok := rec[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func getBool(rec docstore.Record, key string) bool {
	b, _ := rec[key].(bool)
	return b
}

// getInt coerces the numeric representations a JSON round trip can
// produce.
func getInt(rec docstore.Record, key string) int {
	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

func getFloatPtr(rec docstore.Record, key string) *float64 {
	switch v := rec[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	}
	return nil
}

func getStringSlice(rec docstore.Record, key string) []string {
	raw, ok := rec[key].([]any)
	if !ok {
		if typed, ok := rec[key].([]string); ok {
			return typed
		}
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getMap(rec docstore.Record, key string) map[string]any {
	if m, ok := rec[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
