package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/growth"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// MetricResult is the percentile of the latest reading of one metric
type MetricResult struct {
	Metric     growth.Metric
	Value      float64 // kg for weight, cm otherwise
	Unit       string
	MeasuredAt time.Time
	AgeMonths  float64
	Percentile float64
	Label      string
}

// GrowthReport summarises where the baby sits on the reference tables
type GrowthReport struct {
	ProfileID string
	Sex       domain.Sex
	AgeMonths float64
	Results   []MetricResult
	Missing   []growth.Metric
}

type metricSource struct {
	metric growth.Metric
	value  aggregate.MeasurementValue
	unit   string
	per    float64 // stored units per reported unit
}

var metricSources = []metricSource{
	{growth.MetricWeight, aggregate.WeightG, "kg", 1000},
	{growth.MetricLength, aggregate.HeightCm, "cm", 1},
	{growth.MetricHead, aggregate.HeadCm, "cm", 1},
}

type GrowthService struct {
	measurements *repository.MeasurementRepository
}

func NewGrowthService(measurements *repository.MeasurementRepository) *GrowthService {
	return &GrowthService{measurements: measurements}
}

// Report estimates percentiles for the latest measurement of every metric
func (s *GrowthService) Report(ctx context.Context, profile domain.BabyProfile, sex domain.Sex, now time.Time) (*GrowthReport, error) {
	ms, err := s.measurements.ListByProfile(ctx, profile.ID, time.Time{}, now)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return BuildGrowthReport(profile, sex, ms, now), nil
}

// BuildGrowthReport is the storage-free half of Report. Each metric uses the age at
// which it was measured, not today's age.
func BuildGrowthReport(profile domain.BabyProfile, sex domain.Sex, ms []domain.Measurement, now time.Time) *GrowthReport {
	birth := utils.BirthMoment(profile.BirthDate, profile.BirthTime)
	report := &GrowthReport{
		ProfileID: profile.ID,
		Sex:       sex,
		AgeMonths: utils.AgeInMonths(now, birth),
	}
	for _, src := range metricSources {
		m, ok := aggregate.LatestMeasurement(ms, src.value, now)
		if !ok {
			report.Missing = append(report.Missing, src.metric)
			continue
		}
		value := src.value(m) / src.per
		age := utils.AgeInMonths(m.MeasuredAt, birth)
		p := growth.EstimatePercentile(value, age, src.metric, sex)
		report.Results = append(report.Results, MetricResult{
			Metric:     src.metric,
			Value:      value,
			Unit:       src.unit,
			MeasuredAt: m.MeasuredAt,
			AgeMonths:  age,
			Percentile: p,
			Label:      growth.Classify(p),
		})
	}
	return report
}
