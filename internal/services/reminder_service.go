package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
)

// Snapshot is one consistent read of a profile's log
type Snapshot struct {
	Profile domain.BabyProfile
	Entries []domain.LogEntry
	Now     time.Time
}

type ReminderService struct {
	engine  *reminders.Engine
	entries *repository.EntryRepository
	loc     *time.Location
}

// NewReminderService evaluates reminders in loc, the caregiver time zone
func NewReminderService(engine *reminders.Engine, entries *repository.EntryRepository, loc *time.Location) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{engine: engine, entries: entries, loc: loc}
}

func (s *ReminderService) Engine() *reminders.Engine {
	return s.engine
}

// Snapshot loads the whole log of profile. now is moved into the caregiver time zone
// so calendar-day checks use local midnights.
func (s *ReminderService) Snapshot(ctx context.Context, profile domain.BabyProfile, now time.Time) (*Snapshot, error) {
	entries, err := s.entries.ListByProfile(ctx, profile.ID, time.Time{}, time.Time{})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("profile_id", profile.ID)
	}
	return &Snapshot{Profile: profile, Entries: entries, Now: now.In(s.loc)}, nil
}

// Statuses evaluates every reminder over one snapshot
func (s *ReminderService) Statuses(ctx context.Context, profile domain.BabyProfile, now time.Time) ([]reminders.Status, error) {
	snap, err := s.Snapshot(ctx, profile, now)
	if err != nil {
		return nil, err
	}
	return s.engine.Evaluate(snap.Entries, snap.Now, snap.Profile), nil
}
