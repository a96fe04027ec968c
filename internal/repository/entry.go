package repository

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"gorm.io/gorm"
)

// EntryRepository stores the caregiving log
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts the entry. An entry that already carries an id keeps it, which is how undo restores a deleted record.
func (r *EntryRepository) Create(ctx context.Context, e *domain.LogEntry) error {
	if e.ID == "" {
		e.ID = database.NewID()
	}
	rec := database.LogEntryFromDomain(*e)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*e = rec.ToDomain()
	return nil
}

// Update replaces every field of the stored entry
func (r *EntryRepository) Update(ctx context.Context, e *domain.LogEntry) error {
	rec := database.LogEntryFromDomain(*e)
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return err
	}
	*e = rec.ToDomain()
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &database.LogEntry{}, id)
}

func (r *EntryRepository) Get(ctx context.Context, id string) (*domain.LogEntry, error) {
	var rec database.LogEntry
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	e := rec.ToDomain()
	return &e, nil
}

// ListByProfile returns the profile's entries in [from, to], oldest first
func (r *EntryRepository) ListByProfile(ctx context.Context, profileID string, from, to time.Time) ([]domain.LogEntry, error) {
	q := timeRange(r.db.WithContext(ctx).Where("profile_id = ?", profileID), "timestamp", from, to)
	return r.find(q.Order("timestamp ASC, created_at ASC"))
}

// ListTummyWithoutDuration returns tummy-time entries that have no structured duration yet
func (r *EntryRepository) ListTummyWithoutDuration(ctx context.Context) ([]domain.LogEntry, error) {
	q := r.db.WithContext(ctx).Where("tummy_time = ? AND tummy_time_seconds = 0", true)
	return r.find(q.Order("timestamp ASC"))
}

// SetTummyTimeSeconds updates only the structured duration
func (r *EntryRepository) SetTummyTimeSeconds(ctx context.Context, id string, seconds int) error {
	return r.db.WithContext(ctx).Model(&database.LogEntry{}).Where("id = ?", id).Update("tummy_time_seconds", seconds).Error
}

func (r *EntryRepository) find(q *gorm.DB) ([]domain.LogEntry, error) {
	var recs []database.LogEntry
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	entries := make([]domain.LogEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, rec.ToDomain())
	}
	return entries, nil
}
