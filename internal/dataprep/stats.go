package dataprep

import "math"

func column(matrix [][]float64, j int) []float64 {
	out := make([]float64, len(matrix))
	for i, row := range matrix {
		out[i] = row[j]
	}
	return out
}

// nanMean averages the non-NaN values; it is NaN when none exist.
func nanMean(values []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// nanStd is the population standard deviation of the non-NaN values.
func nanStd(values []float64, mean float64) float64 {
	if math.IsNaN(mean) {
		return 0
	}
	sum := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		sum += d * d
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}
