package dataprep

import "math"

// Standardize rescales each column in place to zero mean and unit variance,
// leaving NaN cells untouched. Zero-variance columns collapse to 0.
func Standardize(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}

	cols := len(matrix[0])
	for j := 0; j < cols; j++ {
		values := column(matrix, j)
		mean := nanMean(values)
		std := nanStd(values, mean)

		for i := range matrix {
			cell := matrix[i][j]
			if math.IsNaN(cell) {
				continue
			}
			if std == 0 {
				matrix[i][j] = 0
			} else {
				matrix[i][j] = (cell - mean) / std
			}
		}
	}
}
