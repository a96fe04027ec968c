package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, time.UTC)
}

func TestFilterByCalendarDay(t *testing.T) {
	entries := []domain.LogEntry{
		{ID: "a", Timestamp: at(9, 23, 59)},
		{ID: "b", Timestamp: at(10, 0, 0)},
		{ID: "c", Timestamp: at(10, 23, 59)},
		{ID: "d", Timestamp: at(11, 0, 0)},
	}

	got := FilterByCalendarDay(entries, at(10, 15, 0))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilterByCalendarDay_UsesDayLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	entries := []domain.LogEntry{
		{ID: "late-utc", Timestamp: time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)}, // 01:00 on the 10th locally
	}

	got := FilterByCalendarDay(entries, time.Date(2024, 3, 10, 12, 0, 0, 0, loc))
	require.Len(t, got, 1)
	assert.Empty(t, FilterByCalendarDay(entries, time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC).In(loc)))
}

func TestFilterByWindow_IsInclusive(t *testing.T) {
	since := at(10, 8, 0)
	entries := []domain.LogEntry{
		{ID: "before", Timestamp: since.Add(-time.Second)},
		{ID: "edge", Timestamp: since},
		{ID: "after", Timestamp: since.Add(time.Hour)},
	}

	got := FilterByWindow(entries, since)
	require.Len(t, got, 2)
	assert.Equal(t, "edge", got[0].ID)
}

func TestLastOccurrence(t *testing.T) {
	entries := []domain.LogEntry{
		{ID: "old-feed", Timestamp: at(10, 6, 0), FormulaMl: 90},
		{ID: "vit", Timestamp: at(10, 12, 0), VitaminD: true},
		{ID: "new-feed", Timestamp: at(10, 9, 0), Breastfed: true},
		{ID: "tie-feed", Timestamp: at(10, 9, 0), BreastMilkMl: 40},
	}

	last, ok := LastOccurrence(entries, IsFeeding)
	require.True(t, ok)
	assert.Equal(t, "new-feed", last.ID, "ties keep the first entry in input order")

	_, ok = LastOccurrence(entries, Iron)
	assert.False(t, ok)

	_, ok = LastOccurrence(nil, IsFeeding)
	assert.False(t, ok)
}

func TestSumVolumeAndCount(t *testing.T) {
	entries := []domain.LogEntry{
		{BreastMilkMl: 60, FormulaMl: 30},
		{FormulaMl: 120, Stool: true},
		{Breastfed: true, Urination: true, Stool: true},
	}

	assert.Equal(t, 210.0, SumVolume(entries))
	assert.Equal(t, 3, CountMatching(entries, IsFeeding))
	assert.Equal(t, 2, CountMatching(entries, Stool))
	assert.Equal(t, 0, CountMatching(entries, Vomiting))
}

func TestAverageInterval(t *testing.T) {
	avg, ok := AverageInterval([]time.Time{at(10, 14, 30), at(10, 8, 0), at(10, 11, 0)})
	require.True(t, ok)
	assert.Equal(t, 3*time.Hour+15*time.Minute, avg)

	_, ok = AverageInterval([]time.Time{at(10, 8, 0)})
	assert.False(t, ok, "a single feeding is insufficient data")

	_, ok = AverageInterval(nil)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	entries := []domain.LogEntry{
		{Timestamp: at(10, 7, 0), Breastfed: true},
		{Timestamp: at(10, 10, 0), FormulaMl: 100, Urination: true},
		{Timestamp: at(10, 13, 0), BreastMilkMl: 50, Stool: true, VitaminD: true},
		{Timestamp: at(10, 15, 0), TummyTime: true, TummyTimeSeconds: 300},
		{Timestamp: at(10, 16, 0), TummyTime: true},
		{Timestamp: at(9, 20, 0), FormulaMl: 150, Vomiting: true},
	}

	s := Summarize(entries, at(10, 18, 0))
	assert.Equal(t, at(10, 0, 0), s.Day)
	assert.Equal(t, 3, s.Feedings)
	assert.Equal(t, 1, s.Breastfeedings)
	assert.Equal(t, 50.0, s.BreastMilkMl)
	assert.Equal(t, 100.0, s.FormulaMl)
	assert.Equal(t, 150.0, s.TotalMl)
	assert.Equal(t, 1, s.Stools)
	assert.Equal(t, 1, s.Urinations)
	assert.Equal(t, 0, s.Vomits)
	assert.Equal(t, 1, s.Supplements)
	assert.Equal(t, 300, s.TummyTimeSeconds)
	require.NotNil(t, s.LastFeeding)
	assert.Equal(t, at(10, 13, 0), *s.LastFeeding)
}

func TestSummarizeWeek(t *testing.T) {
	now := at(10, 12, 0)
	entries := []domain.LogEntry{
		{Timestamp: at(2, 12, 0), FormulaMl: 500}, // outside the week
		{Timestamp: at(4, 8, 0), FormulaMl: 100},
		{Timestamp: at(9, 8, 0), FormulaMl: 100, Stool: true},
		{Timestamp: at(10, 8, 0), FormulaMl: 100},
	}

	w := SummarizeWeek(entries, now)
	require.Len(t, w.Days, 7)
	assert.Equal(t, at(4, 0, 0), w.Days[0].Day)
	assert.Equal(t, at(10, 0, 0), w.Days[6].Day)
	assert.Equal(t, 3, w.Feedings)
	assert.Equal(t, 300.0, w.TotalMl)
	assert.Equal(t, 1, w.Stools)

	// The rolling window starts at 12:00 on the 3rd, so all three feedings count.
	require.True(t, w.HasAvgFeedingGap)
	assert.Equal(t, 72*time.Hour, w.AvgFeedingGap)
}

func TestLatestMeasurement_SkipsZeroValues(t *testing.T) {
	measurements := []domain.Measurement{
		{ID: "m1", MeasuredAt: at(1, 9, 0), WeightG: 3500, HeightCm: 51},
		{ID: "m2", MeasuredAt: at(5, 9, 0), WeightG: 3900},
		{ID: "m3", MeasuredAt: at(8, 9, 0), HeadCm: 36},
		{ID: "future", MeasuredAt: at(20, 9, 0), WeightG: 5000},
	}
	now := at(10, 0, 0)

	m, ok := LatestMeasurement(measurements, WeightG, now)
	require.True(t, ok)
	assert.Equal(t, "m2", m.ID)

	m, ok = LatestMeasurement(measurements, HeightCm, now)
	require.True(t, ok)
	assert.Equal(t, "m1", m.ID)

	m, ok = LatestMeasurement(measurements, HeadCm, now)
	require.True(t, ok)
	assert.Equal(t, "m3", m.ID)

	_, ok = LatestMeasurement(measurements[1:2], HeightCm, now)
	assert.False(t, ok)
}

func TestSleepOnDay(t *testing.T) {
	end1 := at(10, 2, 0)
	end2 := at(10, 14, 30)
	sessions := []domain.SleepSession{
		{StartedAt: at(9, 22, 0), EndedAt: &end1},  // 2h on the 10th
		{StartedAt: at(10, 13, 0), EndedAt: &end2}, // 1h30
		{StartedAt: at(10, 20, 0)},                 // open, 1h until now
	}

	got := SleepOnDay(sessions, at(10, 0, 0), at(10, 21, 0))
	assert.Equal(t, 4*time.Hour+30*time.Minute, got)
}
