package analysis

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, or 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// CoV returns the coefficient of variation (stddev / mean).
// Identical values give 0; a non-positive mean gives 0 since the
// ratio is meaningless for the pace data this is used on.
func CoV(values []float64) float64 {
	mean := Mean(values)
	if mean <= 0 {
		return 0
	}
	return StdDev(values) / mean
}

// Median returns the middle value (average of the two middle values for
// even-length input), or 0 for an empty slice
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// validNumber reports whether v is a usable measurement
func validNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
