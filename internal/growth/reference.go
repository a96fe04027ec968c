package growth

import "github.com/vladimiradmaev/babycare-helper/internal/domain"

// Metric is the kind of body measurement a reference curve describes
type Metric string

const (
	MetricWeight Metric = "weight"             // kg
	MetricLength Metric = "length"             // cm
	MetricHead   Metric = "head_circumference" // cm
)

// ReferencePoint is one sampled age row of a WHO percentile curve.
type ReferencePoint struct {
	AgeMonths float64
	P3        float64
	P15       float64
	P50       float64
	P85       float64
	P97       float64
}

// Small fixed sample of the WHO Child Growth Standards (0-24 months).
// Rows are ascending by age; each row and each column is non-decreasing.
var (
	weightBoys = []ReferencePoint{
		{0, 2.5, 2.9, 3.3, 3.9, 4.3},
		{1, 3.4, 3.9, 4.5, 5.1, 5.7},
		{2, 4.4, 4.9, 5.6, 6.3, 7.0},
		{3, 5.1, 5.6, 6.4, 7.2, 7.9},
		{4, 5.6, 6.2, 7.0, 7.9, 8.6},
		{5, 6.1, 6.7, 7.5, 8.4, 9.2},
		{6, 6.4, 7.1, 7.9, 8.9, 9.7},
		{7, 6.7, 7.4, 8.3, 9.3, 10.2},
		{8, 7.0, 7.7, 8.6, 9.6, 10.5},
		{9, 7.2, 7.9, 8.9, 10.0, 10.9},
		{10, 7.5, 8.2, 9.2, 10.3, 11.2},
		{11, 7.7, 8.4, 9.4, 10.5, 11.5},
		{12, 7.8, 8.6, 9.6, 10.8, 11.8},
		{15, 8.4, 9.2, 10.3, 11.5, 12.5},
		{18, 8.9, 9.7, 10.9, 12.2, 13.3},
		{21, 9.4, 10.2, 11.5, 12.9, 14.0},
		{24, 9.8, 10.7, 12.2, 13.6, 14.8},
	}

	weightGirls = []ReferencePoint{
		{0, 2.4, 2.8, 3.2, 3.7, 4.2},
		{1, 3.2, 3.6, 4.2, 4.8, 5.4},
		{2, 4.0, 4.5, 5.1, 5.9, 6.5},
		{3, 4.6, 5.1, 5.8, 6.7, 7.4},
		{4, 5.1, 5.6, 6.4, 7.3, 8.1},
		{5, 5.5, 6.1, 6.9, 7.8, 8.7},
		{6, 5.8, 6.4, 7.3, 8.3, 9.2},
		{7, 6.1, 6.7, 7.6, 8.7, 9.6},
		{8, 6.3, 7.0, 7.9, 9.0, 10.0},
		{9, 6.6, 7.3, 8.2, 9.3, 10.4},
		{10, 6.8, 7.5, 8.5, 9.6, 10.7},
		{11, 7.0, 7.7, 8.7, 9.9, 11.0},
		{12, 7.1, 7.9, 8.9, 10.2, 11.3},
		{15, 7.7, 8.5, 9.6, 10.9, 12.1},
		{18, 8.2, 9.1, 10.2, 11.6, 12.8},
		{21, 8.7, 9.6, 10.9, 12.3, 13.6},
		{24, 9.2, 10.2, 11.5, 13.0, 14.4},
	}

	lengthBoys = []ReferencePoint{
		{0, 46.3, 47.9, 49.9, 51.8, 53.4},
		{1, 51.1, 52.7, 54.7, 56.7, 58.4},
		{2, 54.7, 56.4, 58.4, 60.5, 62.2},
		{3, 57.6, 59.3, 61.4, 63.5, 65.3},
		{4, 60.0, 61.7, 63.9, 66.0, 67.8},
		{5, 61.9, 63.7, 65.9, 68.1, 69.9},
		{6, 63.6, 65.4, 67.6, 69.8, 71.6},
		{7, 65.1, 66.9, 69.2, 71.4, 73.2},
		{8, 66.5, 68.3, 70.6, 72.9, 74.7},
		{9, 67.7, 69.6, 72.0, 74.3, 76.2},
		{10, 69.0, 70.9, 73.3, 75.6, 77.6},
		{11, 70.2, 72.1, 74.5, 77.0, 78.9},
		{12, 71.3, 73.3, 75.7, 78.2, 80.2},
		{15, 74.4, 76.5, 79.1, 81.8, 83.9},
		{18, 77.2, 79.5, 82.3, 85.1, 87.3},
		{21, 79.7, 82.1, 85.1, 88.0, 90.4},
		{24, 81.7, 84.1, 87.1, 90.0, 92.5},
	}

	lengthGirls = []ReferencePoint{
		{0, 45.6, 47.2, 49.1, 51.1, 52.7},
		{1, 50.0, 51.7, 53.7, 55.7, 57.4},
		{2, 53.2, 55.0, 57.1, 59.2, 60.9},
		{3, 55.8, 57.6, 59.8, 62.0, 63.8},
		{4, 58.0, 59.8, 62.1, 64.3, 66.2},
		{5, 59.9, 61.7, 64.0, 66.3, 68.2},
		{6, 61.5, 63.4, 65.7, 68.1, 70.0},
		{7, 62.9, 64.8, 67.3, 69.7, 71.6},
		{8, 64.3, 66.2, 68.7, 71.2, 73.2},
		{9, 65.6, 67.6, 70.1, 72.6, 74.7},
		{10, 66.8, 68.9, 71.5, 74.0, 76.1},
		{11, 68.0, 70.2, 72.8, 75.3, 77.5},
		{12, 69.2, 71.3, 74.0, 76.6, 78.9},
		{15, 72.4, 74.8, 77.5, 80.2, 82.7},
		{18, 75.2, 77.7, 80.7, 83.6, 86.2},
		{21, 77.9, 80.4, 83.7, 86.7, 89.4},
		{24, 80.0, 82.5, 85.7, 88.9, 91.6},
	}

	headBoys = []ReferencePoint{
		{0, 32.1, 33.1, 34.5, 35.8, 36.9},
		{1, 35.1, 36.1, 37.3, 38.5, 39.5},
		{2, 36.9, 37.9, 39.1, 40.3, 41.3},
		{3, 38.3, 39.3, 40.5, 41.7, 42.7},
		{4, 39.4, 40.4, 41.6, 42.9, 43.9},
		{5, 40.3, 41.3, 42.6, 43.8, 44.8},
		{6, 41.0, 42.1, 43.3, 44.6, 45.6},
		{7, 41.7, 42.7, 44.0, 45.3, 46.3},
		{8, 42.2, 43.2, 44.5, 45.8, 46.9},
		{9, 42.6, 43.7, 45.0, 46.3, 47.4},
		{10, 43.0, 44.1, 45.4, 46.7, 47.8},
		{11, 43.4, 44.4, 45.8, 47.1, 48.2},
		{12, 43.6, 44.7, 46.1, 47.4, 48.5},
		{15, 44.3, 45.4, 46.8, 48.2, 49.3},
		{18, 44.8, 45.9, 47.4, 48.8, 49.9},
		{21, 45.2, 46.4, 47.8, 49.3, 50.4},
		{24, 45.5, 46.7, 48.3, 49.7, 50.8},
	}

	headGirls = []ReferencePoint{
		{0, 31.7, 32.7, 33.9, 35.1, 36.1},
		{1, 34.3, 35.3, 36.5, 37.8, 38.8},
		{2, 36.0, 37.0, 38.3, 39.5, 40.5},
		{3, 37.2, 38.2, 39.5, 40.8, 41.9},
		{4, 38.2, 39.3, 40.6, 41.9, 43.0},
		{5, 39.0, 40.1, 41.5, 42.8, 43.9},
		{6, 39.7, 40.8, 42.2, 43.5, 44.6},
		{7, 40.4, 41.5, 42.8, 44.2, 45.3},
		{8, 40.9, 42.0, 43.4, 44.7, 45.9},
		{9, 41.3, 42.4, 43.8, 45.2, 46.3},
		{10, 41.7, 42.8, 44.2, 45.6, 46.8},
		{11, 42.0, 43.2, 44.6, 45.9, 47.1},
		{12, 42.3, 43.5, 44.9, 46.3, 47.5},
		{15, 43.0, 44.2, 45.7, 47.1, 48.3},
		{18, 43.6, 44.8, 46.2, 47.7, 48.9},
		{21, 44.1, 45.3, 46.7, 48.2, 49.4},
		{24, 44.5, 45.7, 47.2, 48.6, 49.8},
	}
)

// Table returns the reference rows for a metric and sex, or nil for an unknown
// metric. Any sex other than female selects the male table.
func Table(metric Metric, sex domain.Sex) []ReferencePoint {
	female := sex == domain.SexFemale
	switch metric {
	case MetricWeight:
		if female {
			return weightGirls
		}
		return weightBoys
	case MetricLength:
		if female {
			return lengthGirls
		}
		return lengthBoys
	case MetricHead:
		if female {
			return headGirls
		}
		return headBoys
	}
	return nil
}

// Metrics lists every metric with a reference table
func Metrics() []Metric {
	return []Metric{MetricWeight, MetricLength, MetricHead}
}
