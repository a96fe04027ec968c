package repository

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"gorm.io/gorm"
)

// VisitRepository stores doctor visits
type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, v *domain.DoctorVisit) error {
	if v.ID == "" {
		v.ID = database.NewID()
	}
	rec := database.DoctorVisitFromDomain(*v)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*v = rec.ToDomain()
	return nil
}

func (r *VisitRepository) Update(ctx context.Context, v *domain.DoctorVisit) error {
	rec := database.DoctorVisitFromDomain(*v)
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return err
	}
	*v = rec.ToDomain()
	return nil
}

func (r *VisitRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &database.DoctorVisit{}, id)
}

func (r *VisitRepository) Get(ctx context.Context, id string) (*domain.DoctorVisit, error) {
	var rec database.DoctorVisit
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	v := rec.ToDomain()
	return &v, nil
}

func (r *VisitRepository) ListByProfile(ctx context.Context, profileID string, from, to time.Time) ([]domain.DoctorVisit, error) {
	var recs []database.DoctorVisit
	q := timeRange(r.db.WithContext(ctx).Where("profile_id = ?", profileID), "visited_at", from, to)
	if err := q.Order("visited_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]domain.DoctorVisit, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	return out, nil
}
