package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/tgallego/stock-gains/internal/dataprep"
	"github.com/tgallego/stock-gains/internal/settings"
)

const rawDataset = `date,open,high,low,close,volume,Name
2017-01-03,10.0,11.0,9.5,10.5,1000,AAL
2017-01-04,10.5,11.5,10.0,11.0,1100,AAL
2017-01-05,11.0,12.0,10.5,12.0,1200,AAL
2017-02-01,11.5,12.5,11.0,12.5,1300,AAL
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunPrepare(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yaml", "target: close\ntest_size: 0.25\n")
	inPath := writeFile(t, dir, "raw.csv", rawDataset)
	outTrain := filepath.Join(dir, "train.csv")
	outTest := filepath.Join(dir, "test.csv")

	err := runPrepare([]string{configPath}, inPath, outTrain, outTest, dataprep.DefaultSeed, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("runPrepare returned error: %v", err)
	}

	for _, path := range []string{outTrain, outTest} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected output %s: %v", path, err)
		}
	}
}

func TestRunPrepareMissingSettings(t *testing.T) {
	dir := t.TempDir()
	// No target or test_size anywhere.
	configPath := writeFile(t, dir, "config.yaml", "port: \"8080\"\n")
	inPath := writeFile(t, dir, "raw.csv", rawDataset)

	err := runPrepare([]string{configPath}, inPath, filepath.Join(dir, "train.csv"), filepath.Join(dir, "test.csv"), dataprep.DefaultSeed, zaptest.NewLogger(t))

	var missing *settings.MissingParamsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParamsError, got %v", err)
	}
}

func TestRunWindow(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yaml", "span: \"2017-01\"\nwarmup: 0d\n")
	inPath := writeFile(t, dir, "raw.csv", rawDataset)
	outPath := filepath.Join(dir, "window.csv")

	if err := runWindow([]string{configPath}, inPath, outPath, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("runWindow returned error: %v", err)
	}

	frame, err := dataprep.ReadCSV(outPath)
	if err != nil {
		t.Fatalf("read window output: %v", err)
	}
	if len(frame.Records) != 3 {
		t.Fatalf("expected 3 rows inside January, got %d", len(frame.Records))
	}
}
