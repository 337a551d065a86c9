package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// NullableTime distinguishes an absent JSON field, an explicit null, and
// a value. Only the task completion timestamp uses the explicit-null
// form to request clearing.
type NullableTime struct {
	Present bool
	Valid   bool
	Time    time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	n.Time = t
	n.Valid = true
	return nil
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(FormatTimestamp(n.Time))
}

func invalidFieldError(field string, value any) error {
	return fmt.Errorf("invalid value for %s: %v", field, value)
}

func requiredFieldError(field string) error {
	return fmt.Errorf("%s is required", field)
}
