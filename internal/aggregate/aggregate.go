// Package aggregate holds the primitives every statistic and reminder is built from.
// All functions are pure and expect entries already filtered to one profile.
package aggregate

import (
	"sort"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// Predicate selects log entries
type Predicate func(domain.LogEntry) bool

// Common predicates, expressed as method values on LogEntry.
var (
	IsFeeding     Predicate = domain.LogEntry.IsFeeding
	VitaminD      Predicate = domain.LogEntry.HasVitaminD
	Iron          Predicate = domain.LogEntry.HasIron
	TummyTime     Predicate = domain.LogEntry.HasTummyTime
	Sterilization Predicate = domain.LogEntry.HasSterilization
	Bathing       Predicate = domain.LogEntry.HasBathing
	Stool         Predicate = domain.LogEntry.HasStool
	Urination     Predicate = domain.LogEntry.HasUrination
	Vomiting      Predicate = domain.LogEntry.HasVomiting
	Supplement    Predicate = domain.LogEntry.HasSupplement
)

// FilterByCalendarDay returns entries whose timestamp, in day's location, falls on day.
func FilterByCalendarDay(entries []domain.LogEntry, day time.Time) []domain.LogEntry {
	midnight := utils.StartOfDay(day)
	var out []domain.LogEntry
	for _, e := range entries {
		if utils.StartOfDay(e.Timestamp.In(midnight.Location())).Equal(midnight) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByWindow returns entries at or after since. The window is rolling, not calendar aligned.
func FilterByWindow(entries []domain.LogEntry, since time.Time) []domain.LogEntry {
	var out []domain.LogEntry
	for _, e := range entries {
		if !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

// LastOccurrence returns the matching entry with the latest timestamp.
// Among equal timestamps the first one in input order wins.
func LastOccurrence(entries []domain.LogEntry, match Predicate) (domain.LogEntry, bool) {
	var (
		last  domain.LogEntry
		found bool
	)
	for _, e := range entries {
		if !match(e) {
			continue
		}
		if !found || e.Timestamp.After(last.Timestamp) {
			last, found = e, true
		}
	}
	return last, found
}

// SumVolume totals breast milk and formula volumes in millilitres.
func SumVolume(entries []domain.LogEntry) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.BreastMilkMl + e.FormulaMl
	}
	return total
}

// CountMatching counts entries satisfying match
func CountMatching(entries []domain.LogEntry, match Predicate) int {
	n := 0
	for _, e := range entries {
		if match(e) {
			n++
		}
	}
	return n
}

// Timestamps extracts the timestamps of matching entries.
func Timestamps(entries []domain.LogEntry, match Predicate) []time.Time {
	var out []time.Time
	for _, e := range entries {
		if match(e) {
			out = append(out, e.Timestamp)
		}
	}
	return out
}

// AverageInterval is the mean gap between successive timestamps.
// ok is false when fewer than two points exist; callers must show "insufficient data".
func AverageInterval(timestamps []time.Time) (avg time.Duration, ok bool) {
	if len(timestamps) < 2 {
		return 0, false
	}
	sorted := make([]time.Time, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	total := sorted[len(sorted)-1].Sub(sorted[0])
	return total / time.Duration(len(sorted)-1), true
}
