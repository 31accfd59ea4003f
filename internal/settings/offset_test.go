package settings

import (
	"testing"
	"time"
)

func TestParseDateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  DateOffset
	}{
		{name: "Days", input: "90d", want: DateOffset{Days: 90}},
		{name: "Weeks", input: "2w", want: DateOffset{Days: 14}},
		{name: "Months", input: "6mo", want: DateOffset{Months: 6}},
		{name: "Years", input: "1y", want: DateOffset{Years: 1}},
		{name: "Combined", input: "1y6mo10d", want: DateOffset{Years: 1, Months: 6, Days: 10}},
		{name: "WeeksAndDays", input: "1w3d", want: DateOffset{Days: 10}},
		{name: "SpacesIgnored", input: " 1y 2mo ", want: DateOffset{Years: 1, Months: 2}},
		{name: "UppercaseUnits", input: "2W", want: DateOffset{Days: 14}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateOffset(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseDateOffsetInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "d", "10", "10x", "1m", "mo3", "1.5y"} {
		if _, err := ParseDateOffset(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestDateOffsetArithmetic(t *testing.T) {
	t.Parallel()

	base := time.Date(2017, time.March, 15, 0, 0, 0, 0, time.UTC)

	offset := DateOffset{Years: 1, Months: 1, Days: 1}
	if got, want := offset.AddTo(base), time.Date(2018, time.April, 16, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got, want := offset.SubFrom(base), time.Date(2016, time.February, 14, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	// AddDate normalization: a month before March 31st lands on March 3rd
	// in a non-leap year rather than a clamped February date.
	endOfMonth := time.Date(2017, time.March, 31, 0, 0, 0, 0, time.UTC)
	if got, want := (DateOffset{Months: 1}).SubFrom(endOfMonth), time.Date(2017, time.March, 3, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDateOffsetString(t *testing.T) {
	t.Parallel()

	if got := (DateOffset{}).String(); got != "0d" {
		t.Fatalf("expected 0d, got %q", got)
	}
	if got := (DateOffset{Years: 2, Days: 5}).String(); got != "2y5d" {
		t.Fatalf("expected 2y5d, got %q", got)
	}
	if !(DateOffset{}).IsZero() {
		t.Fatalf("zero offset should report IsZero")
	}
}
