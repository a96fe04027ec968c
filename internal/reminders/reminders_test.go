package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

func ts(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, time.UTC)
}

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), IronDosingConfig(0, time.Time{}))
}

func profileBornWeeksAgo(now time.Time, weeks int) domain.BabyProfile {
	return domain.BabyProfile{ID: "p1", Name: "Ada", BirthDate: now.AddDate(0, 0, -7*weeks-1)}
}

func TestFeeding(t *testing.T) {
	e := newTestEngine()
	now := ts(10, 12, 0)

	status := e.Feeding(nil, now)
	assert.True(t, status.Due)
	assert.True(t, status.State.NeverRecorded())
	assert.Equal(t, NeverRecordedDays, status.State.DaysSinceLast)

	recent := []domain.LogEntry{{Timestamp: ts(10, 10, 30), FormulaMl: 90}}
	status = e.Feeding(recent, now)
	assert.False(t, status.Due)
	assert.Equal(t, 1, status.State.OccurrencesInWindow)
	assert.Contains(t, status.CurrentStatus, "1h 30m")

	exactly := []domain.LogEntry{{Timestamp: ts(10, 10, 0), Breastfed: true}}
	assert.True(t, e.Feeding(exactly, now).Due, "two hours is already due")

	// Feeding predicate covers breastfeeding and both volumes; other flags do not count.
	other := []domain.LogEntry{{Timestamp: ts(10, 11, 50), VitaminD: true}, {Timestamp: ts(10, 8, 0), BreastMilkMl: 30}}
	assert.True(t, e.Feeding(other, now).Due)
}

func TestFeedingUsesRawDeltaAcrossMidnight(t *testing.T) {
	e := newTestEngine()
	entries := []domain.LogEntry{{Timestamp: ts(9, 23, 30), Breastfed: true}}

	status := e.Feeding(entries, ts(10, 0, 30))
	assert.False(t, status.Due)
	assert.Equal(t, 0, status.State.OccurrencesInWindow)
}

func TestFeedingNotificationCooldown(t *testing.T) {
	e := newTestEngine()
	now := ts(10, 12, 0)
	due := Status{Due: true}

	assert.True(t, e.FeedingNotificationAllowed(due, time.Time{}, now))
	assert.False(t, e.FeedingNotificationAllowed(due, now.Add(-29*time.Minute), now))
	assert.True(t, e.FeedingNotificationAllowed(due, now.Add(-30*time.Minute), now))
	assert.False(t, e.FeedingNotificationAllowed(Status{}, time.Time{}, now))
}

func TestVitaminD(t *testing.T) {
	e := newTestEngine()
	now := ts(10, 9, 0)

	yesterday := []domain.LogEntry{{Timestamp: ts(9, 23, 0), VitaminD: true}}
	status := e.VitaminD(yesterday, now)
	assert.True(t, status.Due, "a dose late yesterday does not cover today")
	assert.Equal(t, 1, status.State.DaysSinceLast)

	today := append(yesterday, domain.LogEntry{Timestamp: ts(10, 7, 15), VitaminD: true})
	status = e.VitaminD(today, now)
	assert.False(t, status.Due)
	assert.Equal(t, "Given today at 07:15", status.CurrentStatus)
}

func TestSterilization(t *testing.T) {
	e := newTestEngine()
	now := ts(10, 9, 0)

	status := e.Sterilization(nil, now)
	assert.True(t, status.Due)
	assert.Equal(t, NeverRecordedDays, status.State.DaysSinceLast)
	assert.Equal(t, "Never recorded", status.CurrentStatus)

	// Calendar days, not 24h periods: 47 hours ago is still "yesterday".
	status = e.Sterilization([]domain.LogEntry{{Timestamp: ts(9, 1, 0), Sterilization: true}}, ts(10, 23, 59))
	assert.False(t, status.Due)
	assert.Equal(t, 1, status.State.DaysSinceLast)

	// Just over 24h ago but two midnights back.
	status = e.Sterilization([]domain.LogEntry{{Timestamp: ts(8, 23, 30), Sterilization: true}}, ts(10, 0, 30))
	assert.True(t, status.Due)
	assert.Equal(t, 2, status.State.DaysSinceLast)
}

func TestBathingSharesCadence(t *testing.T) {
	e := newTestEngine()
	now := ts(10, 18, 0)

	assert.False(t, e.Bathing([]domain.LogEntry{{Timestamp: ts(10, 8, 0), Bathing: true}}, now).Due)
	assert.True(t, e.Bathing([]domain.LogEntry{{Timestamp: ts(8, 20, 0), Bathing: true}}, now).Due)
	assert.True(t, e.Bathing([]domain.LogEntry{{Timestamp: ts(10, 8, 0), Sterilization: true}}, now).Due)
}

func TestTummyTimeTarget(t *testing.T) {
	tests := []struct {
		weeks int
		want  float64
	}{
		{0, 7.5}, {2, 7.5}, {3, 12.5}, {4, 12.5}, {5, 25}, {8, 25}, {9, 50}, {12, 50}, {13, 60}, {104, 60},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, TummyTimeTarget(tc.weeks), "week %d", tc.weeks)
	}
}

func TestTummyTime(t *testing.T) {
	e := newTestEngine()
	now := ts(20, 18, 0)
	profile := profileBornWeeksAgo(now, 6) // 25 min/day target, due under 12.5 min

	entries := []domain.LogEntry{
		{Timestamp: ts(20, 9, 0), TummyTime: true, TummyTimeSeconds: 5 * 60},
		{Timestamp: ts(20, 12, 0), TummyTime: true, TummyTimeSeconds: 6 * 60},
		{Timestamp: ts(19, 12, 0), TummyTime: true, TummyTimeSeconds: 30 * 60},
	}
	status := e.TummyTime(entries, now, profile)
	assert.True(t, status.Due)
	assert.Equal(t, "11 min today", status.CurrentStatus)
	assert.Contains(t, status.TargetDescription, "25.0 min")

	entries = append(entries, domain.LogEntry{Timestamp: ts(20, 15, 0), TummyTime: true, TummyTimeSeconds: 2 * 60})
	assert.False(t, e.TummyTime(entries, now, profile).Due)
}

func TestTummyTimeUnmeasuredSessionsCountAsZero(t *testing.T) {
	e := newTestEngine()
	now := ts(20, 18, 0)
	profile := profileBornWeeksAgo(now, 1)

	entries := []domain.LogEntry{
		{Timestamp: ts(20, 9, 0), TummyTime: true, Notes: "on the play mat"},
		{Timestamp: ts(20, 10, 0), TummyTime: true},
	}
	total, sessions, unmeasured := TummyTimeToday(entries, now)
	assert.Zero(t, total)
	assert.Equal(t, 2, sessions)
	assert.Equal(t, 2, unmeasured)

	status := e.TummyTime(entries, now, profile)
	assert.True(t, status.Due)
	assert.Equal(t, "0 min today (2 sessions without duration)", status.CurrentStatus)
}

func TestParseLegacyTummyDuration(t *testing.T) {
	tests := []struct {
		notes string
		want  int
		ok    bool
	}{
		{notes: "5 min 30 sek", want: 330, ok: true},
		{notes: "Tummy time: 12 min", want: 720, ok: true},
		{notes: "3min 5sek on the mat", want: 185, ok: true},
		{notes: "0 MIN 45 SEK", want: 45, ok: true},
		{notes: "happy baby", ok: false},
		{notes: "", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseLegacyTummyDuration(tc.notes)
		assert.Equal(t, tc.ok, ok, tc.notes)
		assert.Equal(t, tc.want, got, tc.notes)
	}
}

func TestEvaluateRunsEveryReminder(t *testing.T) {
	e := newTestEngine()
	now := ts(20, 18, 0)

	statuses := e.Evaluate(nil, now, profileBornWeeksAgo(now, 3))
	require.Len(t, statuses, 6)

	kinds := make([]Kind, 0, len(statuses))
	for _, s := range statuses {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []Kind{KindFeeding, KindVitaminD, KindSterilization, KindBathing, KindTummyTime, KindDosing}, kinds)

	noDosing := NewEngine(DefaultConfig(), DosingConfig{})
	assert.Len(t, noDosing.Evaluate(nil, now, profileBornWeeksAgo(now, 3)), 5)
	assert.Nil(t, noDosing.Dosing())
}
