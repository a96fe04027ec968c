package reminders

import (
	"fmt"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// WidgetState is the coarse state of a dosing course
type WidgetState string

const (
	WidgetInitial  WidgetState = "initial"
	WidgetTracking WidgetState = "tracking"
)

// DosingTracker follows a multi-dose-per-day course. State is derived from the log only.
type DosingTracker struct {
	cfg DosingConfig
}

// NewDosingTracker creates a tracker. A nil Match defaults to the iron flag.
func NewDosingTracker(cfg DosingConfig) *DosingTracker {
	if cfg.Match == nil {
		cfg.Match = aggregate.Iron
	}
	if cfg.Name == "" {
		cfg.Name = "Medication"
	}
	return &DosingTracker{cfg: cfg}
}

// Config returns the course configuration
func (t *DosingTracker) Config() DosingConfig {
	return t.cfg
}

// HoursSinceLastDose scans the entire log; it does not reset at midnight.
// ok is false only when no dose was ever recorded.
func (t *DosingTracker) HoursSinceLastDose(entries []domain.LogEntry, now time.Time) (hours float64, ok bool) {
	last, found := aggregate.LastOccurrence(entries, t.cfg.Match)
	if !found {
		return 0, false
	}
	return now.Sub(last.Timestamp).Hours(), true
}

// DosesToday counts doses on now's calendar day.
func (t *DosingTracker) DosesToday(entries []domain.LogEntry, now time.Time) int {
	return aggregate.CountMatching(aggregate.FilterByCalendarDay(entries, now), t.cfg.Match)
}

// WidgetState is initial until the first dose, then tracking regardless of day boundaries.
func (t *DosingTracker) WidgetState(entries []domain.LogEntry) WidgetState {
	if aggregate.CountMatching(entries, t.cfg.Match) == 0 {
		return WidgetInitial
	}
	return WidgetTracking
}

// NotificationDue reports whether the dose interval has passed since the last dose.
func (t *DosingTracker) NotificationDue(entries []domain.LogEntry, now time.Time) bool {
	hours, ok := t.HoursSinceLastDose(entries, now)
	return ok && hours >= t.cfg.DoseInterval.Hours()
}

// RemainingDays returns the days left in the course as of today.
// ok is false when the course is open-ended. Days before the start count as day zero.
func (t *DosingTracker) RemainingDays(today time.Time) (days int, ok bool) {
	if t.cfg.CourseDays <= 0 || t.cfg.CourseStart.IsZero() {
		return 0, false
	}
	elapsed := utils.CalendarDaysBetween(t.cfg.CourseStart, today)
	if elapsed < 0 {
		elapsed = 0
	}
	return max(0, t.cfg.CourseDays-elapsed), true
}

// Status renders the tracker as a reminder status
func (t *DosingTracker) Status(entries []domain.LogEntry, now time.Time) Status {
	status := Status{
		Kind:              KindDosing,
		Title:             t.cfg.Name,
		TargetDescription: fmt.Sprintf("%d %s per day, at least %s apart", t.cfg.DosesPerDay, plural(t.cfg.DosesPerDay, "dose", "doses"), formatElapsed(t.cfg.DoseInterval)),
		State:             stateFor(entries, now, t.cfg.Match),
	}
	if remaining, ok := t.RemainingDays(now); ok {
		status.TargetDescription += fmt.Sprintf(", %d %s left in course", remaining, plural(remaining, "day", "days"))
	}

	hours, ok := t.HoursSinceLastDose(entries, now)
	if !ok {
		status.CurrentStatus = "No dose recorded yet"
		return status
	}
	doses := t.DosesToday(entries, now)
	status.Due = t.NotificationDue(entries, now)
	status.CurrentStatus = fmt.Sprintf("%d/%d today, last dose %s ago", doses, t.cfg.DosesPerDay, formatElapsed(time.Duration(hours*float64(time.Hour))))
	return status
}
