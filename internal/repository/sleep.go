package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"gorm.io/gorm"
)

// SleepRepository stores sleep sessions
type SleepRepository struct {
	db *gorm.DB
}

func NewSleepRepository(db *gorm.DB) *SleepRepository {
	return &SleepRepository{db: db}
}

func (r *SleepRepository) Create(ctx context.Context, s *domain.SleepSession) error {
	if s.ID == "" {
		s.ID = database.NewID()
	}
	rec := database.SleepSessionFromDomain(*s)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*s = rec.ToDomain()
	return nil
}

func (r *SleepRepository) Update(ctx context.Context, s *domain.SleepSession) error {
	rec := database.SleepSessionFromDomain(*s)
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return err
	}
	*s = rec.ToDomain()
	return nil
}

func (r *SleepRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &database.SleepSession{}, id)
}

// OpenSession returns the session still running for the profile, or nil
func (r *SleepRepository) OpenSession(ctx context.Context, profileID string) (*domain.SleepSession, error) {
	var rec database.SleepSession
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND ended_at IS NULL", profileID).
		Order("started_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := rec.ToDomain()
	return &s, nil
}

// ListByProfile returns sessions that overlap [from, to], oldest first
func (r *SleepRepository) ListByProfile(ctx context.Context, profileID string, from, to time.Time) ([]domain.SleepSession, error) {
	q := r.db.WithContext(ctx).Where("profile_id = ?", profileID)
	if !to.IsZero() {
		q = q.Where("started_at <= ?", to.UTC())
	}
	if !from.IsZero() {
		q = q.Where("ended_at IS NULL OR ended_at >= ?", from.UTC())
	}
	var recs []database.SleepSession
	if err := q.Order("started_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]domain.SleepSession, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	return out, nil
}
