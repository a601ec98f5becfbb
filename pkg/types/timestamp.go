package types

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalLayout is the layout timestamps are sent to the API in.
const CanonicalLayout = "2006-01-02T15:04:05.000Z07:00"

// Layouts without a zone are interpreted in the local time zone, the
// same way a browser treats the value of a datetime-local input.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a point in time as exchanged with the API.
//
// The backend emits zoneless local date-times, clients send RFC3339
// in UTC. Both are accepted when parsing.
type Timestamp time.Time

// NewTimestamp returns the Timestamp for t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// ParseTimestamp parses RFC3339 as well as the zoneless formats used by
// the backend and by form inputs.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp(t), nil
	}

	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp(t), nil
		}
	}

	return Timestamp{}, fmt.Errorf("cannot parse %q as a timestamp", s)
}

// Time returns the timestamp as time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero reports if the timestamp is the zero value.
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// String returns the canonical representation, see CanonicalLayout.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return time.Time(t).UTC().Format(CanonicalLayout)
}

// MarshalJSON implements the json.Marshaler interface.
// The zero value is written as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*t = Timestamp{}
		return nil
	}

	parsed, err := ParseTimestamp(value)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
