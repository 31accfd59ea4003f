package dataprep

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultSeed keeps train/test splits reproducible across runs.
const DefaultSeed = 2345

// TrainTestSplit shuffles the frame rows with a generator seeded by seed and
// partitions them, the test set taking the first int(n*testSize) positions of
// the permutation.
func TrainTestSplit(f *Frame, testSize float64, seed int64) (train, test *Frame, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, ErrInvalidTestSize
	}
	n := len(f.Records)
	if n == 0 {
		return nil, nil, ErrEmptyFrame
	}

	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(n)
	nTest := int(float64(n) * testSize)

	testRecords := make([][]string, 0, nTest)
	trainRecords := make([][]string, 0, n-nTest)
	for i, idx := range indices {
		if i < nTest {
			testRecords = append(testRecords, f.Records[idx])
		} else {
			trainRecords = append(trainRecords, f.Records[idx])
		}
	}

	train = &Frame{Columns: append([]string(nil), f.Columns...), Records: trainRecords}
	test = &Frame{Columns: append([]string(nil), f.Columns...), Records: testRecords}
	return train, test, nil
}

// ClipWindow keeps the rows whose date cell falls inside [from, to). Dates
// must use the dataset's YYYY-MM-DD form.
func ClipWindow(f *Frame, dateCol string, from, to time.Time) (*Frame, error) {
	idx, err := f.ColumnIndex(dateCol)
	if err != nil {
		return nil, err
	}

	kept := make([][]string, 0, len(f.Records))
	for i, record := range f.Records {
		day, err := time.Parse("2006-01-02", record[idx])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date %q: %w", i+2, record[idx], err)
		}
		if !day.Before(from) && day.Before(to) {
			kept = append(kept, record)
		}
	}

	return &Frame{Columns: append([]string(nil), f.Columns...), Records: kept}, nil
}
