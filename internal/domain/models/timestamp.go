package models

import (
	"fmt"
	"time"
)

// TimestampLayout is the wire format for every timestamp in the snapshot:
// UTC, millisecond precision, trailing zone marker.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DateLayout is the calendar-date granularity used for day filtering and filenames.
const DateLayout = "2006-01-02"

// Timestamp wraps time.Time with an explicit snapshot wire encoding. Each
// dated field declares this type instead of relying on pattern-sniffing
// arbitrary strings on load.
type Timestamp struct {
	time.Time
}

// NewTimestamp builds a Timestamp normalized to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// MarshalJSON encodes the timestamp using TimestampLayout. The zero value
// encodes as JSON null so optional fields stay recognizably absent.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.UTC().Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON decodes a TimestampLayout string, accepting null and empty
// strings as the zero value.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		ts.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp is not a JSON string: %s", s)
	}
	parsed, err := time.Parse(TimestampLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("parse timestamp %s: %w", s, err)
	}
	ts.Time = parsed.UTC()
	return nil
}

// DateIn formats the timestamp at calendar-date granularity in the given location.
func (ts Timestamp) DateIn(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(DateLayout)
}

// SameDay reports whether both timestamps fall on the same calendar date in loc.
func (ts Timestamp) SameDay(other Timestamp, loc *time.Location) bool {
	return ts.DateIn(loc) == other.DateIn(loc)
}
