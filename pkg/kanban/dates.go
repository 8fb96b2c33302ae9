package kanban

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// NoDeadline is shown for tasks without end date.
const NoDeadline = "Sem prazo"

// splitDate reads YYYY-MM-DD or YYYYMMDD into parts.
func splitDate(s string) (year, month, day string, ok bool) {
	switch {
	case len(s) == 10 && strings.Contains(s, "-"):
		parts := strings.Split(s, "-")
		if len(parts) != 3 {
			return "", "", "", false
		}
		return parts[0], parts[1], parts[2], true
	case len(s) == 8:
		return s[0:4], s[4:6], s[6:8], true
	default:
		return "", "", "", false
	}
}

// FormatBrazilian formats YYYY-MM-DD or YYYYMMDD as DD/MM/YYYY.
//
// Other strings are returned as they are.
func FormatBrazilian(s string) string {
	y, m, d, ok := splitDate(s)
	if !ok {
		return s
	}
	return d + "/" + m + "/" + y
}

// FormatAmerican formats YYYY-MM-DD or YYYYMMDD as MM/DD/YYYY.
//
// Strings containing "/" and other strings are returned as they are.
func FormatAmerican(s string) string {
	if strings.Contains(s, "/") {
		return s
	}
	y, m, d, ok := splitDate(s)
	if !ok {
		return s
	}
	return m + "/" + d + "/" + y
}

var american = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ToISO converts MM/DD/YYYY to YYYY-MM-DD. Other strings are returned as they are.
func ToISO(s string) string {
	match := american.FindStringSubmatch(s)
	if match == nil {
		return s
	}
	month, day, year := match[1], match[2], match[3]
	return year + "-" + month + "-" + day
}

// DateMask formats digits in s as MM/DD/YYYY while they are typed.
//
// Non-digits are dropped, and digits after the 8th are ignored.
func DateMask(s string) string {
	digits := strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' {
			return r
		}
		return -1
	}, s)

	switch {
	case len(digits) >= 4:
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:min(len(digits), 8)]
	case len(digits) >= 2:
		return digits[:2] + "/" + digits[2:]
	default:
		return digits
	}
}

// ValidBirthDate checks s is a birth date typed in MM/DD/YYYY.
//
// The year should be in 1900 to 8 years before the year of today,
// and the day should exist in the month.
func ValidBirthDate(s string, today time.Time) bool {
	match := american.FindStringSubmatch(s)
	if match == nil {
		return false
	}
	month, _ := strconv.Atoi(match[1])
	day, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	if year < 1900 || today.Year()-8 < year {
		return false
	}
	if month < 1 || 12 < month {
		return false
	}
	// day 0 of the next month is the last day of the month.
	days := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return 1 <= day && day <= days
}

// FormatDeadline formats the end date of a task for cards.
func FormatDeadline(endDate string) string {
	if strings.TrimSpace(endDate) == "" {
		return NoDeadline
	}
	return FormatBrazilian(endDate)
}

// parseEndDate reads YYYY-MM-DD or YYYYMMDD.
func parseEndDate(s string) (time.Time, bool) {
	s = strings.TrimFunc(s, unicode.IsSpace)
	for _, layout := range []string{time.DateOnly, "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Overdue tells the end date has passed as of today.
//
// A task due today is not overdue. Empty or broken dates are never overdue.
func Overdue(endDate string, today time.Time) bool {
	end, ok := parseEndDate(endDate)
	if !ok {
		return false
	}
	y, m, d := today.Date()
	return end.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
