package dataprep

import (
	"fmt"

	"go.uber.org/zap"
)

const dateColumn = "date"

// Prepare runs the full preparation flow: read the raw dataset, repair and
// standardize the numeric feature columns, then split and store both
// partitions.
func Prepare(s Settings, seed int64, logger *zap.Logger) error {
	frame, err := ReadCSV(s.InPath)
	if err != nil {
		return err
	}
	logger.Info("raw data read",
		zap.String("path", s.InPath),
		zap.Int("rows", len(frame.Records)),
	)

	if _, err := frame.ColumnIndex(s.Target); err != nil {
		return fmt.Errorf("target column: %w", err)
	}

	features := frame.NumericColumns(s.Target)
	if len(features) > 0 {
		matrix, err := frame.Numeric(features)
		if err != nil {
			return err
		}
		ImputeKNN(matrix, Neighbors)
		Standardize(matrix)
		if err := frame.SetNumeric(features, matrix); err != nil {
			return err
		}
	}
	logger.Info("features cleaned", zap.Strings("columns", features))

	train, test, err := TrainTestSplit(frame, s.TestSize, seed)
	if err != nil {
		return err
	}
	logger.Info("data split",
		zap.Int("train_rows", len(train.Records)),
		zap.Int("test_rows", len(test.Records)),
	)

	if err := train.WriteCSV(s.OutTrain); err != nil {
		return err
	}
	logger.Info("train data stored", zap.String("path", s.OutTrain))

	if err := test.WriteCSV(s.OutTest); err != nil {
		return err
	}
	logger.Info("test data stored", zap.String("path", s.OutTest))

	return nil
}

// Window clips the dataset to the configured period, keeping the warm-up
// margin of history before its start.
func Window(s WindowSettings, logger *zap.Logger) error {
	frame, err := ReadCSV(s.InPath)
	if err != nil {
		return err
	}
	logger.Info("raw data read",
		zap.String("path", s.InPath),
		zap.Int("rows", len(frame.Records)),
	)

	from := s.Warmup.SubFrom(s.Span.Start)
	clipped, err := ClipWindow(frame, dateColumn, from, s.Span.End)
	if err != nil {
		return err
	}
	logger.Info("window clipped",
		zap.String("span", s.Span.String()),
		zap.String("warmup", s.Warmup.String()),
		zap.Int("rows", len(clipped.Records)),
	)

	if err := clipped.WriteCSV(s.OutPath); err != nil {
		return err
	}
	logger.Info("window stored", zap.String("path", s.OutPath))

	return nil
}
