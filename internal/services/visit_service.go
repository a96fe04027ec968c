package services

import (
	"context"
	"strings"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
)

type VisitService struct {
	visits *repository.VisitRepository
}

func NewVisitService(visits *repository.VisitRepository) *VisitService {
	return &VisitService{visits: visits}
}

func (s *VisitService) Record(ctx context.Context, v *domain.DoctorVisit) error {
	v.Doctor = strings.TrimSpace(v.Doctor)
	v.Reason = strings.TrimSpace(v.Reason)
	if v.ProfileID == "" {
		return apperrors.ErrNoActiveProfile
	}
	if v.VisitedAt.IsZero() {
		return apperrors.NewValidationError("Visit date is required")
	}
	if v.Doctor == "" {
		return apperrors.NewValidationError("Doctor name is required")
	}
	if err := s.visits.Create(ctx, v); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *VisitService) Delete(ctx context.Context, id string) error {
	return dbError(s.visits.Delete(ctx, id), apperrors.ErrEntryNotFound, id)
}

// Upcoming returns visits scheduled at or after now
func (s *VisitService) Upcoming(ctx context.Context, profileID string, now time.Time) ([]domain.DoctorVisit, error) {
	vs, err := s.visits.ListByProfile(ctx, profileID, now, time.Time{})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return vs, nil
}

func (s *VisitService) List(ctx context.Context, profileID string) ([]domain.DoctorVisit, error) {
	vs, err := s.visits.ListByProfile(ctx, profileID, time.Time{}, time.Time{})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return vs, nil
}
