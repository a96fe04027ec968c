package repository

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles caregiver data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreateUser gets an existing user or creates a new one. The chat id is refreshed on every call.
func (r *UserRepository) GetOrCreateUser(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*domain.User, error) {
	var rec database.User
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&rec)
	if result.Error == nil {
		if chatID != 0 && rec.ChatID != chatID {
			if err := r.db.WithContext(ctx).Model(&rec).Update("chat_id", chatID).Error; err != nil {
				return nil, err
			}
		}
		user := rec.ToDomain()
		return &user, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	rec = database.UserFromDomain(domain.User{
		TelegramID: telegramID,
		ChatID:     chatID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	})
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}

	user := rec.ToDomain()
	return &user, nil
}

// GetUserByTelegramID gets a user by their Telegram ID
func (r *UserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var rec database.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&rec).Error; err != nil {
		return nil, err
	}
	user := rec.ToDomain()
	return &user, nil
}

// SetActiveProfile selects the profile the caregiver is currently logging for
func (r *UserRepository) SetActiveProfile(ctx context.Context, userID uint, profileID string) error {
	return r.db.WithContext(ctx).Model(&database.User{}).Where("id = ?", userID).Update("active_profile_id", profileID).Error
}

// SetBabySex stores the growth-table preference
func (r *UserRepository) SetBabySex(ctx context.Context, userID uint, sex domain.Sex) error {
	return r.db.WithContext(ctx).Model(&database.User{}).Where("id = ?", userID).Update("baby_sex", string(sex)).Error
}

// ListWithActiveProfile returns every caregiver that can receive reminders
func (r *UserRepository) ListWithActiveProfile(ctx context.Context) ([]domain.User, error) {
	var recs []database.User
	err := r.db.WithContext(ctx).
		Where("active_profile_id <> '' AND chat_id <> 0").
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.ToDomain())
	}
	return users, nil
}
