package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard/pkg/kanban"
	"github.com/taskboard/taskboard/pkg/utils/rfctime"
)

// ParseBirthDate reads a birth date given as YYYY-MM-DD, or as digits of MM/DD/YYYY.
//
// Dates in MM/DD/YYYY are checked as the board's form does.
func ParseBirthDate(s string, today time.Time) (rfctime.Date, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "-") {
		s = kanban.DateMask(s)
		if !kanban.ValidBirthDate(s, today) {
			return rfctime.Date{}, fmt.Errorf("%w: birth date is not valid: %q", ErrUsage, s)
		}
	}
	d, err := rfctime.ParseDate(kanban.ToISO(s))
	if err != nil {
		return rfctime.Date{}, fmt.Errorf("%w: birth date: %w", ErrUsage, err)
	}
	return d, nil
}
