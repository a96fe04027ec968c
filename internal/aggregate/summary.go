package aggregate

import (
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// DailySummary aggregates one calendar day of entries
type DailySummary struct {
	Day              time.Time
	Feedings         int
	Breastfeedings   int
	BreastMilkMl     float64
	FormulaMl        float64
	TotalMl          float64
	Stools           int
	Urinations       int
	Vomits           int
	Supplements      int
	TummyTimeSeconds int
	LastFeeding      *time.Time
}

// Summarize aggregates the entries falling on day's calendar day.
func Summarize(entries []domain.LogEntry, day time.Time) DailySummary {
	today := FilterByCalendarDay(entries, day)

	s := DailySummary{
		Day:         utils.StartOfDay(day),
		Feedings:    CountMatching(today, IsFeeding),
		Stools:      CountMatching(today, Stool),
		Urinations:  CountMatching(today, Urination),
		Vomits:      CountMatching(today, Vomiting),
		Supplements: CountMatching(today, Supplement),
		TotalMl:     SumVolume(today),
	}
	for _, e := range today {
		if e.Breastfed {
			s.Breastfeedings++
		}
		s.BreastMilkMl += e.BreastMilkMl
		s.FormulaMl += e.FormulaMl
		if e.TummyTime {
			s.TummyTimeSeconds += e.TummyTimeSeconds
		}
	}
	if last, ok := LastOccurrence(today, IsFeeding); ok {
		ts := last.Timestamp
		s.LastFeeding = &ts
	}
	return s
}

// WeekSummary is a rolling seven-day view ending at Now
type WeekSummary struct {
	Now              time.Time
	Days             []DailySummary // oldest first, the last element is today
	Feedings         int
	TotalMl          float64
	Stools           int
	Urinations       int
	AvgFeedingGap    time.Duration
	HasAvgFeedingGap bool
}

// SummarizeWeek aggregates the last seven calendar days (today included) and the
// rolling seven-day window used for the average feeding interval.
func SummarizeWeek(entries []domain.LogEntry, now time.Time) WeekSummary {
	w := WeekSummary{Now: now}

	today := utils.StartOfDay(now)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		d := Summarize(entries, day)
		w.Days = append(w.Days, d)
		w.Feedings += d.Feedings
		w.TotalMl += d.TotalMl
		w.Stools += d.Stools
		w.Urinations += d.Urinations
	}

	window := FilterByWindow(entries, now.Add(-7*utils.Day))
	w.AvgFeedingGap, w.HasAvgFeedingGap = AverageInterval(Timestamps(window, IsFeeding))
	return w
}

// MeasurementValue extracts one metric from a measurement; zero means not recorded.
type MeasurementValue func(domain.Measurement) float64

var (
	WeightG  MeasurementValue = func(m domain.Measurement) float64 { return m.WeightG }
	HeightCm MeasurementValue = func(m domain.Measurement) float64 { return m.HeightCm }
	HeadCm   MeasurementValue = func(m domain.Measurement) float64 { return m.HeadCm }
)

// LatestMeasurement returns the most recent measurement at or before at whose value is non-zero.
func LatestMeasurement(measurements []domain.Measurement, value MeasurementValue, at time.Time) (domain.Measurement, bool) {
	var (
		latest domain.Measurement
		found  bool
	)
	for _, m := range measurements {
		if value(m) <= 0 || m.MeasuredAt.After(at) {
			continue
		}
		if !found || m.MeasuredAt.After(latest.MeasuredAt) {
			latest, found = m, true
		}
	}
	return latest, found
}

// SleepOnDay sums sleep overlapping day's calendar day. Open sessions run until now.
func SleepOnDay(sessions []domain.SleepSession, day, now time.Time) time.Duration {
	start := utils.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	var total time.Duration
	for _, s := range sessions {
		from := s.StartedAt
		to := now
		if s.EndedAt != nil {
			to = *s.EndedAt
		}
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		if to.After(from) {
			total += to.Sub(from)
		}
	}
	return total
}
