package utils

import (
	"math"
	"time"
)

const (
	// Day is a fixed 24h span used for elapsed-time arithmetic.
	Day = 24 * time.Hour

	// AverageMonth is 365.25/12 days. Ages in months are approximations, not calendar months.
	AverageMonth = time.Duration(30.44 * float64(Day))

	// MaxAgeMonths is the last age covered by the growth reference tables.
	MaxAgeMonths = 24.0
)

// TimeToMinutes converts time string to minutes since midnight
func TimeToMinutes(timeStr string) int {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// BirthMoment combines a birth date with an optional "HH:MM" birth time.
func BirthMoment(birthDate time.Time, birthTime string) time.Time {
	day := StartOfDay(birthDate)
	if birthTime == "" {
		return day
	}
	return day.Add(time.Duration(TimeToMinutes(birthTime)) * time.Minute)
}

// AgeInDays returns whole days elapsed between birth and now.
func AgeInDays(birth, now time.Time) int {
	elapsed := now.Sub(birth)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(elapsed / Day)
}

// AgeInWeeks returns whole weeks elapsed between birth and now.
func AgeInWeeks(birth, now time.Time) int {
	return AgeInDays(birth, now) / 7
}

// AgeInMonths returns fractional average months between birth and date, clamped to [0, 24].
func AgeInMonths(date, birth time.Time) float64 {
	months := float64(date.Sub(birth)) / float64(AverageMonth)
	if months < 0 {
		return 0
	}
	if months > MaxAgeMonths {
		return MaxAgeMonths
	}
	return months
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a, viewed in b's location, falls on b's calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a.In(b.Location())).Equal(StartOfDay(b))
}

// CalendarDaysBetween counts the midnights crossed going from a to b, in b's location.
// DST transitions do not change the result.
func CalendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(math.Round(to.Sub(from).Hours() / 24))
}
