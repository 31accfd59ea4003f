package dataprep

import (
	"math"
	"sort"
)

// Neighbors is the default neighbor count for KNN imputation.
const Neighbors = 5

// ImputeKNN fills NaN cells in place with the mean of the target column over
// the k nearest rows. Distance is Euclidean over the coordinates both rows
// have observed, scaled up for coordinates missing on either side, and is
// always computed against the matrix as it was before any filling. Cells with
// no usable neighbor fall back to the column mean, then 0.
func ImputeKNN(matrix [][]float64, k int) {
	if len(matrix) == 0 {
		return
	}
	if k <= 0 {
		k = Neighbors
	}

	original := make([][]float64, len(matrix))
	for i, row := range matrix {
		original[i] = append([]float64(nil), row...)
	}

	cols := len(matrix[0])
	colMeans := make([]float64, cols)
	for j := 0; j < cols; j++ {
		colMeans[j] = nanMean(column(original, j))
	}

	type candidate struct {
		dist  float64
		value float64
	}

	for i, row := range original {
		for j, cell := range row {
			if !math.IsNaN(cell) {
				continue
			}

			var candidates []candidate
			for r, other := range original {
				if r == i || math.IsNaN(other[j]) {
					continue
				}
				dist, ok := observedDistance(row, other, j)
				if !ok {
					continue
				}
				candidates = append(candidates, candidate{dist: dist, value: other[j]})
			}

			if len(candidates) == 0 {
				if math.IsNaN(colMeans[j]) {
					matrix[i][j] = 0
				} else {
					matrix[i][j] = colMeans[j]
				}
				continue
			}

			sort.Slice(candidates, func(a, b int) bool {
				return candidates[a].dist < candidates[b].dist
			})
			if len(candidates) > k {
				candidates = candidates[:k]
			}

			sum := 0.0
			for _, c := range candidates {
				sum += c.value
			}
			matrix[i][j] = sum / float64(len(candidates))
		}
	}
}

// observedDistance is the Euclidean distance over mutually observed
// coordinates, excluding col, rescaled to the full row width.
func observedDistance(a, b []float64, col int) (float64, bool) {
	sum := 0.0
	shared := 0
	total := 0
	for i := range a {
		if i == col {
			continue
		}
		total++
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		d := a[i] - b[i]
		sum += d * d
		shared++
	}
	if shared == 0 {
		return 0, false
	}
	return math.Sqrt(sum * float64(total) / float64(shared)), true
}
