package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

type SleepService struct {
	sessions *repository.SleepRepository
}

func NewSleepService(sessions *repository.SleepRepository) *SleepService {
	return &SleepService{sessions: sessions}
}

// Start opens a sleep session. Only one session per profile may be open.
func (s *SleepService) Start(ctx context.Context, profileID string, at time.Time) (*domain.SleepSession, error) {
	open, err := s.sessions.OpenSession(ctx, profileID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if open != nil {
		return nil, apperrors.NewValidationError("The baby is already asleep, stop the current session first")
	}
	session := &domain.SleepSession{ProfileID: profileID, StartedAt: at}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return session, nil
}

// Stop closes the open session at the given time
func (s *SleepService) Stop(ctx context.Context, profileID string, at time.Time) (*domain.SleepSession, error) {
	open, err := s.sessions.OpenSession(ctx, profileID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if open == nil {
		return nil, apperrors.NewValidationError("No sleep session is running")
	}
	if at.Before(open.StartedAt) {
		return nil, apperrors.NewValidationError("Wake-up time is before the sleep started")
	}
	open.EndedAt = &at
	if err := s.sessions.Update(ctx, open); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return open, nil
}

// Asleep reports the running session, or nil
func (s *SleepService) Asleep(ctx context.Context, profileID string) (*domain.SleepSession, error) {
	open, err := s.sessions.OpenSession(ctx, profileID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return open, nil
}

// TotalOnDay sums the sleep falling on day's calendar day
func (s *SleepService) TotalOnDay(ctx context.Context, profileID string, day, now time.Time) (time.Duration, error) {
	from := utils.StartOfDay(day)
	to := from.AddDate(0, 0, 1)
	sessions, err := s.sessions.ListByProfile(ctx, profileID, from, to)
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return aggregate.SleepOnDay(sessions, day, now), nil
}
