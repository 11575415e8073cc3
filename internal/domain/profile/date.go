package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date. It accepts YYYY-MM-DD or RFC 3339 input.
type Date struct {
	time.Time
}

func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, ErrInvalidDate
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return Date{Time: t.UTC()}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return Date{Time: t.UTC()}, nil
	}
	return Date{}, ErrInvalidDate
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
