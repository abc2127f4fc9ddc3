package models

import (
	"strings"
	"time"
)

// Tutum renders datetimes in RFC 1123 with a numeric zone
// ("Wed, 17 Sep 2014 17:32:46 +0000").
const timestampLayout = time.RFC1123Z

// Timestamp wraps time.Time to handle the API's datetime rendering.
// Null and empty strings decode to the zero time.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(timestampLayout) + `"`), nil
}

// MarshalYAML keeps CLI yaml output readable; yaml has no special
// handling for the embedded time.Time.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(timestampLayout), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(timestampLayout, s)
	if err != nil {
		// Some endpoints emit RFC 3339 instead.
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}
