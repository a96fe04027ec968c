package services

import (
	"context"
	"errors"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"gorm.io/gorm"
)

// UndoStore holds the most recently deleted entry per caregiver
type UndoStore interface {
	PutUndo(ctx context.Context, userID int64, entry domain.LogEntry, ttl time.Duration) error
	TakeUndo(ctx context.Context, userID int64) (*domain.LogEntry, error)
}

// CooldownStore remembers when a tagged notification was last sent
type CooldownStore interface {
	MarkSent(ctx context.Context, tag string, at time.Time, ttl time.Duration) error
	LastSent(ctx context.Context, tag string) (time.Time, error)
}

// dbError maps a repository error to an AppError, turning a missing row into sentinel.
func dbError(err error, sentinel *apperrors.AppError, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(sentinel, id)
	}
	return apperrors.NewDatabaseError(err)
}
