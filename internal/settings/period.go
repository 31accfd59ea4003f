package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a half-open calendar span [Start, End) in UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod parses the compact period spellings used in configuration
// files: "2017" (calendar year), "2017-03" (month), "2017-03-15" (single
// day) and "2017Q2" (quarter).
func ParsePeriod(value string) (Period, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return Period{}, fmt.Errorf("parse period: empty value")
	}

	if i := strings.IndexAny(raw, "Qq"); i > 0 {
		year, yearErr := strconv.Atoi(raw[:i])
		quarter, quarterErr := strconv.Atoi(raw[i+1:])
		if yearErr != nil || quarterErr != nil || quarter < 1 || quarter > 4 {
			return Period{}, fmt.Errorf("parse period %q: want YYYYQn with n in 1..4", value)
		}
		start := time.Date(year, time.Month(3*(quarter-1)+1), 1, 0, 0, 0, 0, time.UTC)
		return Period{Start: start, End: start.AddDate(0, 3, 0)}, nil
	}

	var layout string
	var advance func(time.Time) time.Time
	switch strings.Count(raw, "-") {
	case 0:
		layout = "2006"
		advance = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
	case 1:
		layout = "2006-01"
		advance = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	case 2:
		layout = "2006-01-02"
		advance = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	default:
		return Period{}, fmt.Errorf("parse period %q: unrecognized form", value)
	}

	start, err := time.Parse(layout, raw)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", value, err)
	}
	return Period{Start: start, End: advance(start)}, nil
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

func (p Period) String() string {
	return fmt.Sprintf("[%s, %s)", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}
