package dataprep

import (
	"strings"
	"testing"

	"github.com/tgallego/stock-gains/internal/settings"
)

func validSettings() Settings {
	return Settings{
		Target:   "quality",
		TestSize: 0.2,
		InPath:   "data/winequality-red.csv",
		OutTrain: "data/train.csv",
		OutTest:  "data/test.csv",
	}
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	if err := validSettings().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSettingsValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
		wantIn string
	}{
		{
			name:   "ZeroTestSize",
			mutate: func(s *Settings) { s.TestSize = 0 },
			wantIn: "test_size",
		},
		{
			name:   "TestSizeTooLarge",
			mutate: func(s *Settings) { s.TestSize = 1 },
			wantIn: "test_size must satisfy lt=1",
		},
		{
			name:   "EmptyTarget",
			mutate: func(s *Settings) { s.Target = "" },
			wantIn: "target",
		},
		{
			name:   "EmptyOutputs",
			mutate: func(s *Settings) { s.OutTrain, s.OutTest = "", "" },
			wantIn: "out_train",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := validSettings()
			tc.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantIn) {
				t.Fatalf("expected error to mention %q, got %v", tc.wantIn, err)
			}
		})
	}
}

func TestWindowSettingsValidate(t *testing.T) {
	t.Parallel()

	span, err := settings.ParsePeriod("2017Q1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	valid := WindowSettings{
		InPath:  "data/all_stocks_5yr.csv",
		OutPath: "data/window.csv",
		Span:    span,
		Warmup:  settings.DateOffset{Months: 1},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noSpan := valid
	noSpan.Span = settings.Period{}
	if err := noSpan.Validate(); err == nil || !strings.Contains(err.Error(), "span") {
		t.Fatalf("expected span error, got %v", err)
	}

	noPath := valid
	noPath.OutPath = ""
	if err := noPath.Validate(); err == nil || !strings.Contains(err.Error(), "out_path") {
		t.Fatalf("expected out_path error, got %v", err)
	}
}
