// Package timestamp implements the wire format used for booking dates.
//
// Dates travel as "2006-01-02T15:04:05" without a zone and are interpreted as UTC.
// RFC 3339 input is accepted as well so that zone-aware clients keep working.
package timestamp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const Layout = "2006-01-02T15:04:05"

// Time wraps time.Time with the ShareIt JSON encoding.
type Time struct {
	time.Time
}

// From converts t to UTC and drops sub-second precision.
func From(t time.Time) Time {
	return Time{Time: t.UTC().Truncate(time.Second)}
}

// Parse accepts Layout or RFC 3339.
func Parse(s string) (Time, error) {
	if t, err := time.ParseInLocation(Layout, s, time.UTC); err == nil {
		return From(t), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Time{}, fmt.Errorf("invalid timestamp %q: expected %s", s, Layout)
	}
	return From(t), nil
}

func (t Time) String() string {
	return t.UTC().Format(Layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
