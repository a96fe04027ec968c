package reminders

import (
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
)

const (
	DefaultFeedingInterval   = 2 * time.Hour
	DefaultFeedingCooldown   = 30 * time.Minute
	DefaultSterilizationDays = 2
	DefaultBathingDays       = 2
	DefaultTummyTimeShare    = 0.5

	DefaultDoseInterval = 4 * time.Hour
	DefaultDosesPerDay  = 2
)

// Config holds the cadence constants of the daily-care reminders
type Config struct {
	FeedingInterval   time.Duration
	FeedingCooldown   time.Duration
	SterilizationDays int
	BathingDays       int
	// TummyTimeShare is the fraction of the daily tummy-time target below which
	// the reminder fires.
	TummyTimeShare float64
}

// DefaultConfig returns the shipped reminder cadences
func DefaultConfig() Config {
	return Config{
		FeedingInterval:   DefaultFeedingInterval,
		FeedingCooldown:   DefaultFeedingCooldown,
		SterilizationDays: DefaultSterilizationDays,
		BathingDays:       DefaultBathingDays,
		TummyTimeShare:    DefaultTummyTimeShare,
	}
}

// DosingConfig describes a fixed multi-dose-per-day medication course
type DosingConfig struct {
	Name         string
	Match        aggregate.Predicate
	DoseInterval time.Duration
	DosesPerDay  int
	// CourseDays is the course length; zero means open-ended.
	CourseDays  int
	CourseStart time.Time
}

// IronDosingConfig returns the shipped iron-supplement regimen
func IronDosingConfig(courseDays int, courseStart time.Time) DosingConfig {
	return DosingConfig{
		Name:         "Iron",
		Match:        aggregate.Iron,
		DoseInterval: DefaultDoseInterval,
		DosesPerDay:  DefaultDosesPerDay,
		CourseDays:   courseDays,
		CourseStart:  courseStart,
	}
}
