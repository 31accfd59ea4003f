package settings

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateOffset is a calendar shift expressed in years, months and days. It is
// applied with time.Time.AddDate, so month and year arithmetic follows
// calendar normalization rather than fixed-length durations.
type DateOffset struct {
	Years  int
	Months int
	Days   int
}

var offsetToken = regexp.MustCompile(`^(\d+)(y|mo|w|d)`)

// ParseDateOffset parses a concatenation of offset tokens such as "1y6mo",
// "2w" or "90d". Units: y (years), mo (months), w (weeks), d (days).
func ParseDateOffset(value string) (DateOffset, error) {
	raw := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
	if raw == "" {
		return DateOffset{}, fmt.Errorf("parse date offset: empty value")
	}

	var offset DateOffset
	for len(raw) > 0 {
		m := offsetToken.FindStringSubmatch(raw)
		if m == nil {
			return DateOffset{}, fmt.Errorf("parse date offset %q: want tokens like 1y, 6mo, 2w or 90d", value)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return DateOffset{}, fmt.Errorf("parse date offset %q: %w", value, err)
		}
		switch m[2] {
		case "y":
			offset.Years += n
		case "mo":
			offset.Months += n
		case "w":
			offset.Days += 7 * n
		case "d":
			offset.Days += n
		}
		raw = raw[len(m[0]):]
	}
	return offset, nil
}

// AddTo shifts t forward by the offset.
func (o DateOffset) AddTo(t time.Time) time.Time {
	return t.AddDate(o.Years, o.Months, o.Days)
}

// SubFrom shifts t backward by the offset.
func (o DateOffset) SubFrom(t time.Time) time.Time {
	return t.AddDate(-o.Years, -o.Months, -o.Days)
}

// IsZero reports whether the offset shifts by nothing.
func (o DateOffset) IsZero() bool {
	return o == DateOffset{}
}

func (o DateOffset) String() string {
	if o.IsZero() {
		return "0d"
	}
	var b strings.Builder
	if o.Years != 0 {
		fmt.Fprintf(&b, "%dy", o.Years)
	}
	if o.Months != 0 {
		fmt.Fprintf(&b, "%dmo", o.Months)
	}
	if o.Days != 0 {
		fmt.Fprintf(&b, "%dd", o.Days)
	}
	return b.String()
}
