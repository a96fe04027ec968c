package services

import (
	"context"
	"strings"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
)

const maxProfileNameLen = 64

type ProfileService struct {
	profiles *repository.ProfileRepository
	users    *repository.UserRepository
	now      func() time.Time
}

func NewProfileService(profiles *repository.ProfileRepository, users *repository.UserRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, now: time.Now}
}

// CreateProfile stores a new baby profile and makes it the caregiver's active one
func (s *ProfileService) CreateProfile(ctx context.Context, owner *domain.User, name string, birthDate time.Time, birthTime string) (*domain.BabyProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxProfileNameLen {
		return nil, apperrors.NewValidationError("Name must be between 1 and 64 characters")
	}
	if birthDate.IsZero() || birthDate.After(s.now()) {
		return nil, apperrors.NewValidationError("Birth date must not be in the future")
	}
	if birthTime != "" {
		if _, err := time.Parse("15:04", birthTime); err != nil {
			return nil, apperrors.NewValidationError("Birth time must look like HH:MM")
		}
	}

	profile := &domain.BabyProfile{
		OwnerID:   owner.ID,
		Name:      name,
		BirthDate: birthDate,
		BirthTime: birthTime,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := s.users.SetActiveProfile(ctx, owner.ID, profile.ID); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	owner.ActiveProfileID = profile.ID

	logger.Info("Baby profile created", "user_id", owner.ID, "profile_id", profile.ID)
	return profile, nil
}

func (s *ProfileService) ListProfiles(ctx context.Context, ownerID uint) ([]domain.BabyProfile, error) {
	profiles, err := s.profiles.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return profiles, nil
}

// SelectProfile switches the caregiver's active profile to one they own
func (s *ProfileService) SelectProfile(ctx context.Context, user *domain.User, profileID string) (*domain.BabyProfile, error) {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, dbError(err, apperrors.ErrProfileNotFound, profileID)
	}
	if profile.OwnerID != user.ID {
		return nil, apperrors.NewNotFoundError(apperrors.ErrProfileNotFound, profileID)
	}
	if err := s.users.SetActiveProfile(ctx, user.ID, profile.ID); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	user.ActiveProfileID = profile.ID
	return profile, nil
}

// ActiveProfile loads the profile the caregiver is logging for
func (s *ProfileService) ActiveProfile(ctx context.Context, user *domain.User) (*domain.BabyProfile, error) {
	if user.ActiveProfileID == "" {
		return nil, apperrors.ErrNoActiveProfile
	}
	profile, err := s.profiles.Get(ctx, user.ActiveProfileID)
	if err != nil {
		return nil, dbError(err, apperrors.ErrProfileNotFound, user.ActiveProfileID)
	}
	return profile, nil
}

// UpdateBirthStats records birth weight and length
func (s *ProfileService) UpdateBirthStats(ctx context.Context, profile *domain.BabyProfile, weightG, heightCm float64) error {
	if weightG < 0 || heightCm < 0 {
		return apperrors.NewValidationError("Birth weight and length must not be negative")
	}
	profile.BirthWeightG = weightG
	profile.BirthHeightCm = heightCm
	if err := s.profiles.Update(ctx, profile); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}
