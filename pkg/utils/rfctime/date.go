package rfctime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// full-date in RFC3339 (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// compact date, as YYYYMMDD.
const CompactDateFormat = "20060102"

// Date is a calendar date without time of day.
//
// It is serialized as RFC3339 full-date.
// Parsing also accepts YYYYMMDD and RFC3339 date-time (the date part in its own offset is taken).
type Date time.Time

// NewDate truncates t to its date, in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) String() string {
	return time.Time(d).Format(DateFormat)
}

func (d *Date) Equal(other *Date) bool {
	if (d == nil) != (other == nil) {
		return false
	}
	return d == nil || d.Time().Equal(other.Time())
}

func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return Date(t), nil
	}
	if len(s) == len(CompactDateFormat) {
		if t, err := time.Parse(CompactDateFormat, s); err == nil {
			return Date(t), nil
		}
	}
	if t, err := time.Parse(RFC3339DateTimeFormatZ, s); err == nil {
		return NewDate(t), nil
	}
	return Date{}, fmt.Errorf("not a date (YYYY-MM-DD): %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, d)), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ret, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = ret
	return nil
}
