package settings

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
	str2duration "github.com/xhit/go-str2duration/v2"
)

type coerceFunc func(value any) (any, error)

// coercers maps time-like field types to conversions from raw YAML values.
// Values that already carry the target type pass through untouched.
var coercers = map[reflect.Type]coerceFunc{
	reflect.TypeOf(time.Time{}):      coerceDate,
	reflect.TypeOf(time.Duration(0)): coerceDuration,
	reflect.TypeOf(Period{}):         coercePeriod,
	reflect.TypeOf(DateOffset{}):     coerceOffset,
}

// coerceDate accepts time.Time values, date strings and Unix-second integers.
func coerceDate(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseDate(v)
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case uint64:
		return time.Unix(int64(v), 0).UTC(), nil
	default:
		return nil, fmt.Errorf("cannot interpret %T as a date", value)
	}
}

// parseDate resolves the strict YYYY-MM-DD form first and falls back to
// natural date expressions such as "March 5th 2024" or "2024/03/05".
func parseDate(value string) (time.Time, error) {
	raw := strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}

	parser := dps.Parser{}
	cfg := &dps.Configuration{
		PreferredDateSource: dps.CurrentPeriod,
	}
	parsed, err := parser.Parse(cfg, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	if parsed.IsZero() {
		return time.Time{}, fmt.Errorf("parse date %q: unrecognized form", value)
	}
	return parsed.Time, nil
}

// coerceDuration accepts time.Duration values, duration strings (the
// time.ParseDuration syntax extended with days and weeks) and nanosecond
// integers.
func coerceDuration(value any) (any, error) {
	switch v := value.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := str2duration.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", v, err)
		}
		return d, nil
	case int:
		return time.Duration(v), nil
	case int64:
		return time.Duration(v), nil
	case float64:
		return time.Duration(int64(v)), nil
	default:
		return nil, fmt.Errorf("cannot interpret %T as a duration", value)
	}
}

func coercePeriod(value any) (any, error) {
	switch v := value.(type) {
	case Period:
		return v, nil
	case string:
		return ParsePeriod(v)
	default:
		return nil, fmt.Errorf("cannot interpret %T as a period", value)
	}
}

// coerceOffset accepts DateOffset values, token strings ("1y6mo") and YAML
// mappings with years/months/weeks/days keys.
func coerceOffset(value any) (any, error) {
	switch v := value.(type) {
	case DateOffset:
		return v, nil
	case string:
		return ParseDateOffset(v)
	case map[string]any:
		return offsetFromMap(v)
	default:
		return nil, fmt.Errorf("cannot interpret %T as a date offset", value)
	}
}

func offsetFromMap(m map[string]any) (DateOffset, error) {
	var offset DateOffset
	for unit, raw := range m {
		n, ok := raw.(int)
		if !ok {
			return DateOffset{}, fmt.Errorf("date offset %s: want an integer, got %T", unit, raw)
		}
		switch unit {
		case "years":
			offset.Years += n
		case "months":
			offset.Months += n
		case "weeks":
			offset.Days += 7 * n
		case "days":
			offset.Days += n
		default:
			return DateOffset{}, fmt.Errorf("date offset: unknown unit %q", unit)
		}
	}
	return offset, nil
}
