package reminders

import (
	"fmt"
	"time"
)

// NeverRecordedDays stands in for "days since last" when an event was never logged.
const NeverRecordedDays = 999

// Kind names a reminder
type Kind string

const (
	KindFeeding       Kind = "feeding"
	KindVitaminD      Kind = "vitamin_d"
	KindSterilization Kind = "sterilization"
	KindBathing       Kind = "bathing"
	KindTummyTime     Kind = "tummy_time"
	KindDosing        Kind = "dosing"
)

// State is derived from the live log on every pass and never stored.
type State struct {
	LastOccurrence      *time.Time
	OccurrencesInWindow int
	DaysSinceLast       int
}

// NeverRecorded reports whether the event has no occurrence at all
func (s State) NeverRecorded() bool {
	return s.LastOccurrence == nil
}

// Status is the outcome of one reminder predicate
type Status struct {
	Kind              Kind
	Title             string
	Due               bool
	CurrentStatus     string
	TargetDescription string
	State             State
}

// CooldownElapsed reports whether a new notification may be sent.
// A zero lastSent means nothing was sent yet.
func CooldownElapsed(lastSent, now time.Time, cooldown time.Duration) bool {
	return lastSent.IsZero() || now.Sub(lastSent) >= cooldown
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Minute)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

func formatDaysAgo(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
