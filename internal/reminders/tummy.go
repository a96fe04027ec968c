package reminders

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

type tummyBand struct {
	maxWeek int
	minutes float64
}

// Daily tummy-time targets by age in weeks. Ages past the last band use openEndedTummyMinutes.
var tummyBands = []tummyBand{
	{maxWeek: 2, minutes: 7.5},
	{maxWeek: 4, minutes: 12.5},
	{maxWeek: 8, minutes: 25},
	{maxWeek: 12, minutes: 50},
}

const openEndedTummyMinutes = 60

// TummyTimeTarget returns the daily tummy-time target in minutes for an age in weeks.
func TummyTimeTarget(ageWeeks int) float64 {
	for _, b := range tummyBands {
		if ageWeeks <= b.maxWeek {
			return b.minutes
		}
	}
	return openEndedTummyMinutes
}

// TummyTimeToday sums today's structured durations. Sessions flagged as tummy time
// without a duration contribute zero and are counted in unmeasured.
func TummyTimeToday(entries []domain.LogEntry, now time.Time) (total time.Duration, sessions, unmeasured int) {
	for _, e := range aggregate.FilterByCalendarDay(entries, now) {
		if !e.TummyTime {
			continue
		}
		sessions++
		if e.TummyTimeSeconds <= 0 {
			unmeasured++
			continue
		}
		total += time.Duration(e.TummyTimeSeconds) * time.Second
	}
	return total, sessions, unmeasured
}

// TummyTime is due while today's total is under the configured share of the age target.
func (e *Engine) TummyTime(entries []domain.LogEntry, now time.Time, profile domain.BabyProfile) Status {
	weeks := utils.AgeInWeeks(utils.BirthMoment(profile.BirthDate, profile.BirthTime), now)
	target := TummyTimeTarget(weeks)

	status := Status{
		Kind:              KindTummyTime,
		Title:             "Tummy time",
		TargetDescription: fmt.Sprintf("About %.1f min per day at %d %s", target, weeks, plural(weeks, "week", "weeks")),
	}
	status.State = stateFor(entries, now, aggregate.TummyTime)

	total, _, unmeasured := TummyTimeToday(entries, now)
	minutes := total.Minutes()
	status.Due = minutes < target*e.cfg.TummyTimeShare
	status.CurrentStatus = fmt.Sprintf("%.0f min today", minutes)
	if unmeasured > 0 {
		status.CurrentStatus += fmt.Sprintf(" (%d %s without duration)", unmeasured, plural(unmeasured, "session", "sessions"))
	}
	return status
}

var legacyTummyPattern = regexp.MustCompile(`(?i)(\d+)\s*min(?:\s*(\d+)\s*sek)?`)

// ParseLegacyTummyDuration reads a duration written as "X min Y sek" in free-text notes.
// It only serves importing old entries; new entries carry TummyTimeSeconds.
func ParseLegacyTummyDuration(notes string) (seconds int, ok bool) {
	m := legacyTummyPattern.FindStringSubmatch(notes)
	if m == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	seconds = minutes * 60
	if m[2] != "" {
		extra, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, false
		}
		seconds += extra
	}
	return seconds, true
}
