package repository

import (
	"context"

	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"gorm.io/gorm"
)

// ProfileRepository stores baby profiles
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create assigns an id when missing and inserts the profile
func (r *ProfileRepository) Create(ctx context.Context, p *domain.BabyProfile) error {
	if p.ID == "" {
		p.ID = database.NewID()
	}
	rec := database.ProfileFromDomain(*p)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*p = rec.ToDomain()
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.BabyProfile) error {
	rec := database.ProfileFromDomain(*p)
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return err
	}
	*p = rec.ToDomain()
	return nil
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (*domain.BabyProfile, error) {
	var rec database.BabyProfile
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	p := rec.ToDomain()
	return &p, nil
}

// ListByOwner returns the caregiver's profiles, oldest first
func (r *ProfileRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.BabyProfile, error) {
	var recs []database.BabyProfile
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	profiles := make([]domain.BabyProfile, 0, len(recs))
	for _, rec := range recs {
		profiles = append(profiles, rec.ToDomain())
	}
	return profiles, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &database.BabyProfile{}, id)
}
