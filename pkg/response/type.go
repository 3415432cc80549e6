package response

import (
	"encoding/json"
	"time"
)

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// DateTime is a UTC timestamp that marshals as DateTimeFormat.
type DateTime time.Time

// NewDateTime returns nil for the zero time so omitempty fields drop it.
func NewDateTime(t time.Time) *DateTime {
	if t.IsZero() {
		return nil
	}
	d := DateTime(t)
	return &d
}

// MarshalJSON implements json.Marshaler for DateTime.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).UTC().Format(DateTimeFormat))
}

// UnmarshalJSON implements json.Unmarshaler for DateTime.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(DateTimeFormat, s, time.UTC)
	if err != nil {
		return err
	}
	*d = DateTime(t)
	return nil
}
