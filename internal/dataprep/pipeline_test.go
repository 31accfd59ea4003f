package dataprep

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/tgallego/stock-gains/internal/settings"
)

func TestPrepare(t *testing.T) {
	in := writeCSV(t, `fixed_acidity,alcohol,quality
7.4,9.4,5
7.8,,5
7.8,10.2,6
11.2,9.8,6
7.4,9.9,5
6.6,10.4,7
7.9,9.5,5
7.3,10.1,6
`)
	dir := t.TempDir()
	s := Settings{
		Target:   "quality",
		TestSize: 0.25,
		InPath:   in,
		OutTrain: filepath.Join(dir, "train.csv"),
		OutTest:  filepath.Join(dir, "test.csv"),
	}

	if err := Prepare(s, DefaultSeed, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	train, err := ReadCSV(s.OutTrain)
	if err != nil {
		t.Fatalf("read train output: %v", err)
	}
	test, err := ReadCSV(s.OutTest)
	if err != nil {
		t.Fatalf("read test output: %v", err)
	}

	if len(train.Columns) != 3 || train.Columns[2] != "quality" {
		t.Fatalf("unexpected columns: %v", train.Columns)
	}
	if got := len(train.Records) + len(test.Records); got != 8 {
		t.Fatalf("expected 8 rows across partitions, got %d", got)
	}
	if len(test.Records) != 2 {
		t.Fatalf("expected 2 test rows, got %d", len(test.Records))
	}

	// Features are repaired and standardized; the target stays untouched.
	for _, frame := range []*Frame{train, test} {
		for _, record := range frame.Records {
			if record[1] == "" {
				t.Fatalf("expected imputed alcohol cell, got empty: %v", record)
			}
			if record[2] != "5" && record[2] != "6" && record[2] != "7" {
				t.Fatalf("target must keep its raw values, got %q", record[2])
			}
		}
	}
}

func TestPrepareUnknownTarget(t *testing.T) {
	in := writeCSV(t, "a,b\n1,2\n")
	dir := t.TempDir()
	s := Settings{
		Target:   "quality",
		TestSize: 0.5,
		InPath:   in,
		OutTrain: filepath.Join(dir, "train.csv"),
		OutTest:  filepath.Join(dir, "test.csv"),
	}

	err := Prepare(s, DefaultSeed, zaptest.NewLogger(t))
	if err == nil {
		t.Fatalf("expected error for unknown target column")
	}
	if !strings.Contains(err.Error(), "target column") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPrepareMissingInput(t *testing.T) {
	dir := t.TempDir()
	s := Settings{
		Target:   "quality",
		TestSize: 0.5,
		InPath:   filepath.Join(dir, "absent.csv"),
		OutTrain: filepath.Join(dir, "train.csv"),
		OutTest:  filepath.Join(dir, "test.csv"),
	}

	if err := Prepare(s, DefaultSeed, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for missing input file")
	}
}

func TestWindow(t *testing.T) {
	in := writeCSV(t, `date,open,close,Name
2016-12-20,1,1,AAPL
2016-12-27,2,2,AAPL
2017-01-03,3,3,AAPL
2017-02-28,4,4,AAPL
2017-04-03,5,5,AAPL
`)
	out := filepath.Join(t.TempDir(), "window.csv")

	span, err := settings.ParsePeriod("2017Q1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := WindowSettings{
		InPath:  in,
		OutPath: out,
		Span:    span,
		Warmup:  settings.DateOffset{Days: 7},
	}

	if err := Window(s, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Window returned error: %v", err)
	}

	got, err := ReadCSV(out)
	if err != nil {
		t.Fatalf("read window output: %v", err)
	}
	// Quarter plus one week of warm-up: 2016-12-27 through 2017-03-31.
	if len(got.Records) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(got.Records), got.Records)
	}
	if got.Records[0][0] != "2016-12-27" || got.Records[2][0] != "2017-02-28" {
		t.Fatalf("unexpected window rows: %v", got.Records)
	}
}
