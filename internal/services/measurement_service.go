package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
)

// Plausibility limits for the first two years
const (
	minWeightG  = 500
	maxWeightG  = 30000
	maxHeightCm = 120
	maxHeadCm   = 60
)

type MeasurementService struct {
	measurements *repository.MeasurementRepository
	now          func() time.Time
}

func NewMeasurementService(measurements *repository.MeasurementRepository) *MeasurementService {
	return &MeasurementService{measurements: measurements, now: time.Now}
}

func validateMeasurement(m *domain.Measurement, now time.Time) error {
	if m.ProfileID == "" {
		return apperrors.ErrNoActiveProfile
	}
	if m.MeasuredAt.IsZero() || m.MeasuredAt.After(now.Add(futureTolerance)) {
		return apperrors.NewValidationError("Measurement time must not be in the future")
	}
	if m.WeightG < 0 || m.HeightCm < 0 || m.HeadCm < 0 {
		return apperrors.NewValidationError("Measurements must not be negative")
	}
	if !m.HasWeight() && !m.HasHeight() && !m.HasHead() {
		return apperrors.NewValidationError("Enter at least one of weight, length or head circumference")
	}
	if (m.HasWeight() && m.WeightG < minWeightG) || m.WeightG > maxWeightG || m.HeightCm > maxHeightCm || m.HeadCm > maxHeadCm {
		return apperrors.NewValidationError("Measurement looks implausible, check the units (grams and centimetres)")
	}
	return nil
}

func (s *MeasurementService) Record(ctx context.Context, m *domain.Measurement) error {
	if err := validateMeasurement(m, s.now()); err != nil {
		return err
	}
	if err := s.measurements.Create(ctx, m); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	logger.Info("Measurement recorded", "profile_id", m.ProfileID, "measurement_id", m.ID)
	return nil
}

func (s *MeasurementService) Update(ctx context.Context, m *domain.Measurement) error {
	existing, err := s.Get(ctx, m.ProfileID, m.ID)
	if err != nil {
		return err
	}
	if err := validateMeasurement(m, s.now()); err != nil {
		return err
	}
	m.CreatedAt = existing.CreatedAt
	if err := s.measurements.Update(ctx, m); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// Get loads a measurement that belongs to profileID
func (s *MeasurementService) Get(ctx context.Context, profileID, id string) (*domain.Measurement, error) {
	m, err := s.measurements.Get(ctx, id)
	if err != nil {
		return nil, dbError(err, apperrors.ErrMeasurementNotFound, id)
	}
	if m.ProfileID != profileID {
		return nil, apperrors.NewNotFoundError(apperrors.ErrMeasurementNotFound, id)
	}
	return m, nil
}

func (s *MeasurementService) Delete(ctx context.Context, profileID, id string) error {
	if _, err := s.Get(ctx, profileID, id); err != nil {
		return err
	}
	return dbError(s.measurements.Delete(ctx, id), apperrors.ErrMeasurementNotFound, id)
}

// List returns every measurement of the profile, oldest first
func (s *MeasurementService) List(ctx context.Context, profileID string) ([]domain.Measurement, error) {
	ms, err := s.measurements.ListByProfile(ctx, profileID, time.Time{}, time.Time{})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return ms, nil
}
