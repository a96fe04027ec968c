// Package reminders decides whether recurring care actions are overdue.
//
// "Time since" checks run over the whole log with raw timestamp deltas; "count today"
// checks run over the local calendar day. Each reminder keeps its own policy.
package reminders

import (
	"fmt"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// Engine evaluates the reminder predicates for one profile's log
type Engine struct {
	cfg    Config
	dosing *DosingTracker
}

// NewEngine creates a reminder engine. A dosing config with zero interval disables dose tracking.
func NewEngine(cfg Config, dosing DosingConfig) *Engine {
	e := &Engine{cfg: cfg}
	if dosing.DoseInterval > 0 {
		e.dosing = NewDosingTracker(dosing)
	}
	return e
}

// Dosing returns the dose tracker, or nil when disabled
func (e *Engine) Dosing() *DosingTracker {
	return e.dosing
}

// Config returns the reminder cadences
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate runs every reminder over a consistent snapshot of the profile's log.
func (e *Engine) Evaluate(entries []domain.LogEntry, now time.Time, profile domain.BabyProfile) []Status {
	statuses := []Status{
		e.Feeding(entries, now),
		e.VitaminD(entries, now),
		e.Sterilization(entries, now),
		e.Bathing(entries, now),
		e.TummyTime(entries, now, profile),
	}
	if e.dosing != nil {
		statuses = append(statuses, e.dosing.Status(entries, now))
	}
	return statuses
}

// Feeding is due once the time since the last feeding reaches the feeding interval.
func (e *Engine) Feeding(entries []domain.LogEntry, now time.Time) Status {
	status := Status{
		Kind:              KindFeeding,
		Title:             "Feeding",
		TargetDescription: fmt.Sprintf("Feed at least every %s", formatElapsed(e.cfg.FeedingInterval)),
	}
	status.State = stateFor(entries, now, aggregate.IsFeeding)

	last, ok := aggregate.LastOccurrence(entries, aggregate.IsFeeding)
	if !ok {
		status.Due = true
		status.CurrentStatus = "No feeding recorded yet"
		return status
	}

	since := now.Sub(last.Timestamp)
	status.Due = since >= e.cfg.FeedingInterval
	status.CurrentStatus = fmt.Sprintf("Last feeding %s ago at %s", formatElapsed(since), last.Timestamp.In(now.Location()).Format("15:04"))
	return status
}

// FeedingNotificationAllowed applies the re-notify cooldown to a due feeding reminder.
func (e *Engine) FeedingNotificationAllowed(status Status, lastSent, now time.Time) bool {
	return status.Due && CooldownElapsed(lastSent, now, e.cfg.FeedingCooldown)
}

// VitaminD is due when no dose was given on today's calendar day.
func (e *Engine) VitaminD(entries []domain.LogEntry, now time.Time) Status {
	status := Status{
		Kind:              KindVitaminD,
		Title:             "Vitamin D",
		TargetDescription: "One dose every day",
	}
	status.State = stateFor(entries, now, aggregate.VitaminD)

	today := aggregate.FilterByCalendarDay(entries, now)
	if last, ok := aggregate.LastOccurrence(today, aggregate.VitaminD); ok {
		status.CurrentStatus = "Given today at " + last.Timestamp.In(now.Location()).Format("15:04")
		return status
	}
	status.Due = true
	status.CurrentStatus = "Not given today"
	return status
}

// Sterilization follows the bottle sterilization cadence in calendar days.
func (e *Engine) Sterilization(entries []domain.LogEntry, now time.Time) Status {
	return e.cadence(entries, now, KindSterilization, "Bottle sterilization", aggregate.Sterilization, e.cfg.SterilizationDays)
}

// Bathing follows the bathing cadence in calendar days.
func (e *Engine) Bathing(entries []domain.LogEntry, now time.Time) Status {
	return e.cadence(entries, now, KindBathing, "Bath", aggregate.Bathing, e.cfg.BathingDays)
}

func (e *Engine) cadence(entries []domain.LogEntry, now time.Time, kind Kind, title string, match aggregate.Predicate, everyDays int) Status {
	status := Status{
		Kind:              kind,
		Title:             title,
		TargetDescription: fmt.Sprintf("Every %d %s", everyDays, plural(everyDays, "day", "days")),
	}
	status.State = stateFor(entries, now, match)

	if status.State.NeverRecorded() {
		status.Due = true
		status.CurrentStatus = "Never recorded"
		return status
	}
	status.Due = status.State.DaysSinceLast >= everyDays
	status.CurrentStatus = "Last " + formatDaysAgo(status.State.DaysSinceLast)
	return status
}

// stateFor derives the ReminderState of one event kind.
func stateFor(entries []domain.LogEntry, now time.Time, match aggregate.Predicate) State {
	state := State{
		OccurrencesInWindow: aggregate.CountMatching(aggregate.FilterByCalendarDay(entries, now), match),
		DaysSinceLast:       NeverRecordedDays,
	}
	if last, ok := aggregate.LastOccurrence(entries, match); ok {
		ts := last.Timestamp
		state.LastOccurrence = &ts
		state.DaysSinceLast = utils.CalendarDaysBetween(ts, now)
	}
	return state
}
