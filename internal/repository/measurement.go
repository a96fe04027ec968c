package repository

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"gorm.io/gorm"
)

// MeasurementRepository stores body-size readings
type MeasurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

func (r *MeasurementRepository) Create(ctx context.Context, m *domain.Measurement) error {
	if m.ID == "" {
		m.ID = database.NewID()
	}
	rec := database.MeasurementFromDomain(*m)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*m = rec.ToDomain()
	return nil
}

func (r *MeasurementRepository) Update(ctx context.Context, m *domain.Measurement) error {
	rec := database.MeasurementFromDomain(*m)
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return err
	}
	*m = rec.ToDomain()
	return nil
}

func (r *MeasurementRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &database.Measurement{}, id)
}

func (r *MeasurementRepository) Get(ctx context.Context, id string) (*domain.Measurement, error) {
	var rec database.Measurement
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	m := rec.ToDomain()
	return &m, nil
}

func (r *MeasurementRepository) ListByProfile(ctx context.Context, profileID string, from, to time.Time) ([]domain.Measurement, error) {
	var recs []database.Measurement
	q := timeRange(r.db.WithContext(ctx).Where("profile_id = ?", profileID), "measured_at", from, to)
	if err := q.Order("measured_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Measurement, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	return out, nil
}
