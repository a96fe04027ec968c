package services

import (
	"context"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
)

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// RegisterUser returns the caregiver for telegramID, creating it on first contact
func (s *UserService) RegisterUser(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*domain.User, error) {
	user, err := s.users.GetOrCreateUser(ctx, telegramID, chatID, username, firstName, lastName)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("telegram_id", telegramID)
	}
	return user, nil
}

func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.users.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, dbError(err, apperrors.ErrUserNotFound, "")
	}
	return user, nil
}

// SetBabySex stores which growth tables the caregiver wants
func (s *UserService) SetBabySex(ctx context.Context, user *domain.User, sex domain.Sex) error {
	if !sex.Valid() {
		return apperrors.NewValidationError("Sex must be male or female")
	}
	if err := s.users.SetBabySex(ctx, user.ID, sex); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	user.BabySex = sex
	logger.Info("Baby sex preference updated", "user_id", user.ID, "sex", sex)
	return nil
}

// ReminderRecipients lists caregivers with an active profile and a known chat
func (s *UserService) ReminderRecipients(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListWithActiveProfile(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return users, nil
}
