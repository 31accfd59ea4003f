package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/tgallego/stock-gains/internal/dataprep"
	"github.com/tgallego/stock-gains/internal/logging"
	"github.com/tgallego/stock-gains/internal/settings"
)

func main() {
	app := kingpin.New("dataprep", "Stock dataset preparation tooling")

	prepareCmd := app.Command("prepare", "Prepare train and test datasets from the raw stock data")
	prepareConfigs := prepareCmd.Flag("config", "Path to a YAML configuration file (repeatable, later files win)").
		Default("config/config.yaml").ExistingFiles()
	prepareIn := prepareCmd.Flag("in-path", "Path where raw data is read from").
		Default("data/all_stocks_5yr.csv").String()
	prepareOutTrain := prepareCmd.Flag("out-train", "Path where prepared train data is stored").
		Default("data/train.csv").String()
	prepareOutTest := prepareCmd.Flag("out-test", "Path where prepared test data is stored").
		Default("data/test.csv").String()
	prepareSeed := prepareCmd.Flag("seed", "Random seed for the train/test split").
		Default("2345").Int64()

	windowCmd := app.Command("window", "Clip the dataset to the configured calendar window")
	windowConfigs := windowCmd.Flag("config", "Path to a YAML configuration file (repeatable, later files win)").
		Default("config/config.yaml").ExistingFiles()
	windowIn := windowCmd.Flag("in-path", "Path where raw data is read from").
		Default("data/all_stocks_5yr.csv").String()
	windowOut := windowCmd.Flag("out-path", "Path where the clipped data is stored").
		Default("data/window.csv").String()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := logging.New()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	var runErr error
	switch command {
	case prepareCmd.FullCommand():
		runErr = runPrepare(*prepareConfigs, *prepareIn, *prepareOutTrain, *prepareOutTest, *prepareSeed, logger)
	case windowCmd.FullCommand():
		runErr = runWindow(*windowConfigs, *windowIn, *windowOut, logger)
	}

	if runErr != nil {
		logger.Error("command failed", zap.Error(runErr))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// runPrepare loads the preparation settings from the config files, with the
// I/O path flags passed through as overrides, and runs the preparation flow.
func runPrepare(configs []string, inPath, outTrain, outTest string, seed int64, logger *zap.Logger) error {
	s, err := settings.Load[dataprep.Settings](configs, settings.Overrides{
		"in_path":   inPath,
		"out_train": outTrain,
		"out_test":  outTest,
	}, settings.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("settings loaded", zap.Strings("config", configs))

	if err := s.Validate(); err != nil {
		return err
	}
	return dataprep.Prepare(s, seed, logger)
}

func runWindow(configs []string, inPath, outPath string, logger *zap.Logger) error {
	s, err := settings.Load[dataprep.WindowSettings](configs, settings.Overrides{
		"in_path":  inPath,
		"out_path": outPath,
	}, settings.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("settings loaded", zap.Strings("config", configs))

	if err := s.Validate(); err != nil {
		return err
	}
	return dataprep.Window(s, logger)
}
