package dataprep

import (
	"fmt"
	"math"
)

// SubtractGroupMean replaces the value column with its deviation from the
// per-group mean and appends the mean itself as "<value>_mean_by_<group>".
// Missing cells neither contribute to a group mean nor get demeaned.
func SubtractGroupMean(f *Frame, groupCol, valueCol string) error {
	groupIdx, err := f.ColumnIndex(groupCol)
	if err != nil {
		return err
	}
	valueIdx, err := f.ColumnIndex(valueCol)
	if err != nil {
		return err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, record := range f.Records {
		v := parseCell(record[valueIdx])
		if math.IsNaN(v) {
			continue
		}
		sums[record[groupIdx]] += v
		counts[record[groupIdx]]++
	}

	means := make([]string, len(f.Records))
	for i, record := range f.Records {
		key := record[groupIdx]
		if counts[key] == 0 {
			means[i] = ""
			continue
		}
		mean := sums[key] / float64(counts[key])
		means[i] = formatCell(mean)

		if v := parseCell(record[valueIdx]); !math.IsNaN(v) {
			f.Records[i][valueIdx] = formatCell(v - mean)
		}
	}

	return f.AppendColumn(fmt.Sprintf("%s_mean_by_%s", valueCol, groupCol), means)
}
