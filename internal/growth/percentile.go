// Package growth estimates growth percentiles against a small fixed sample of the
// WHO Child Growth Standards.
//
// The estimate is a piecewise-linear approximation between the 3rd, 15th, 50th, 85th
// and 97th percentile points of the nearest sampled age. It is not the WHO LMS
// (Box-Cox) method and must not be presented as a clinical assessment.
package growth

import (
	"math"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

const (
	// MinPercentile is reported for any value below the 3rd percentile curve.
	MinPercentile = 1.0
	// MaxPercentile is reported for any value at or above the 97th percentile curve.
	MaxPercentile = 99.0
)

// NearestRow selects the row whose age is closest to ageMonths.
// Exact ties resolve to the lower age. The age axis is never interpolated.
func NearestRow(rows []ReferencePoint, ageMonths float64) (ReferencePoint, bool) {
	if len(rows) == 0 {
		return ReferencePoint{}, false
	}
	best := rows[0]
	bestDiff := math.Abs(best.AgeMonths - ageMonths)
	for _, row := range rows[1:] {
		diff := math.Abs(row.AgeMonths - ageMonths)
		if diff < bestDiff {
			best, bestDiff = row, diff
		}
	}
	return best, true
}

// PercentileInRow ranks value within a single reference row.
func PercentileInRow(row ReferencePoint, value float64) float64 {
	switch {
	case value < row.P3:
		return MinPercentile
	case value < row.P15:
		return band(value, row.P3, row.P15, 3, 12)
	case value < row.P50:
		return band(value, row.P15, row.P50, 15, 35)
	case value < row.P85:
		return band(value, row.P50, row.P85, 50, 35)
	case value < row.P97:
		return band(value, row.P85, row.P97, 85, 12)
	default:
		return MaxPercentile
	}
}

// band interpolates linearly inside [lo, hi). A zero-width band yields its lower bound.
func band(value, lo, hi, base, width float64) float64 {
	span := hi - lo
	if span <= 0 {
		return base
	}
	return base + (value-lo)/span*width
}

// EstimatePercentile returns the approximate percentile of value (kg for weight,
// cm otherwise) at ageMonths. The result is always within [1, 99].
func EstimatePercentile(value, ageMonths float64, metric Metric, sex domain.Sex) float64 {
	row, ok := NearestRow(Table(metric, sex), ageMonths)
	if !ok {
		return MinPercentile
	}
	return PercentileInRow(row, value)
}

// Classify turns a percentile into a short human-readable band label.
func Classify(percentile float64) string {
	switch {
	case percentile < 3:
		return "below 3rd percentile"
	case percentile < 15:
		return "3rd-15th percentile"
	case percentile < 85:
		return "typical range (15th-85th)"
	case percentile < 97:
		return "85th-97th percentile"
	default:
		return "above 97th percentile"
	}
}
