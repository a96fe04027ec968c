package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/metrics"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// futureTolerance absorbs clock skew between the caregiver's device and the server
const futureTolerance = 5 * time.Minute

type EntryService struct {
	entries    *repository.EntryRepository
	undo       UndoStore
	undoWindow time.Duration
	now        func() time.Time
}

func NewEntryService(entries *repository.EntryRepository, undo UndoStore, undoWindow time.Duration) *EntryService {
	return &EntryService{entries: entries, undo: undo, undoWindow: undoWindow, now: time.Now}
}

func (s *EntryService) validate(e *domain.LogEntry) error {
	if e.ProfileID == "" {
		return apperrors.ErrNoActiveProfile
	}
	if e.Timestamp.IsZero() {
		return apperrors.NewValidationError("Entry time is required")
	}
	if e.Timestamp.After(s.now().Add(futureTolerance)) {
		return apperrors.NewValidationError("Entry time must not be in the future")
	}
	if e.BreastMilkMl < 0 || e.FormulaMl < 0 {
		return apperrors.NewValidationError("Volume must not be negative")
	}
	if e.TummyTimeSeconds < 0 {
		return apperrors.NewValidationError("Tummy time must not be negative")
	}
	if !recordsAnything(*e) {
		return apperrors.ErrInvalidEntry
	}
	return nil
}

func recordsAnything(e domain.LogEntry) bool {
	return e.IsFeeding() || e.HasSupplement() ||
		e.Stool || e.Urination || e.Vomiting ||
		e.TummyTime || e.Sterilization || e.Bathing ||
		e.Notes != ""
}

// LogEntry validates and stores a new entry
func (s *EntryService) LogEntry(ctx context.Context, e *domain.LogEntry) error {
	if err := s.validate(e); err != nil {
		return err
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return apperrors.NewDatabaseError(err).WithContext("profile_id", e.ProfileID)
	}
	metrics.EntriesLogged.WithLabelValues(metrics.EntryKind(*e)).Inc()
	logger.Info("Entry logged", "profile_id", e.ProfileID, "entry_id", e.ID, "kind", metrics.EntryKind(*e))
	return nil
}

// UpdateEntry replaces all fields of an existing entry. The id and creation time are kept.
func (s *EntryService) UpdateEntry(ctx context.Context, e *domain.LogEntry) error {
	existing, err := s.entries.Get(ctx, e.ID)
	if err != nil {
		return dbError(err, apperrors.ErrEntryNotFound, e.ID)
	}
	if existing.ProfileID != e.ProfileID {
		return apperrors.NewNotFoundError(apperrors.ErrEntryNotFound, e.ID)
	}
	if err := s.validate(e); err != nil {
		return err
	}
	e.CreatedAt = existing.CreatedAt
	if err := s.entries.Update(ctx, e); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *EntryService) GetEntry(ctx context.Context, profileID, id string) (*domain.LogEntry, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, dbError(err, apperrors.ErrEntryNotFound, id)
	}
	if e.ProfileID != profileID {
		return nil, apperrors.NewNotFoundError(apperrors.ErrEntryNotFound, id)
	}
	return e, nil
}

// DeleteEntry removes the entry and keeps a copy in the caregiver's undo buffer
func (s *EntryService) DeleteEntry(ctx context.Context, userID int64, profileID, id string) (*domain.LogEntry, error) {
	e, err := s.GetEntry(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return nil, dbError(err, apperrors.ErrEntryNotFound, id)
	}
	if err := s.undo.PutUndo(ctx, userID, *e, s.undoWindow); err != nil {
		logger.Warn("Failed to keep deleted entry for undo", "entry_id", id, "error", err)
	}
	logger.Info("Entry deleted", "profile_id", profileID, "entry_id", id)
	return e, nil
}

// Undo restores the last deleted entry with its original id and fields
func (s *EntryService) Undo(ctx context.Context, userID int64) (*domain.LogEntry, error) {
	e, err := s.undo.TakeUndo(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if e == nil {
		return nil, apperrors.ErrUndoExpired
	}
	if err := s.entries.Create(ctx, e); err != nil {
		// keep the deletion undoable while storage is failing
		if putErr := s.undo.PutUndo(ctx, userID, *e, s.undoWindow); putErr != nil {
			logger.Warn("Failed to re-queue undo", "user_id", userID, "entry_id", e.ID, "error", putErr)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	logger.Info("Entry restored", "profile_id", e.ProfileID, "entry_id", e.ID)
	return e, nil
}

// ListAll returns the profile's whole log, oldest first
func (s *EntryService) ListAll(ctx context.Context, profileID string) ([]domain.LogEntry, error) {
	entries, err := s.entries.ListByProfile(ctx, profileID, time.Time{}, time.Time{})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

// ListDay returns the entries on day's calendar day in day's location
func (s *EntryService) ListDay(ctx context.Context, profileID string, day time.Time) ([]domain.LogEntry, error) {
	from := utils.StartOfDay(day)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	entries, err := s.entries.ListByProfile(ctx, profileID, from, to)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

// ImportResult reports what BackfillTummyDurations changed
type ImportResult struct {
	Updated int
	Skipped int
}

// BackfillTummyDurations parses legacy "X min Y sek" notes into the structured duration
func (s *EntryService) BackfillTummyDurations(ctx context.Context) (ImportResult, error) {
	var result ImportResult
	entries, err := s.entries.ListTummyWithoutDuration(ctx)
	if err != nil {
		return result, apperrors.NewDatabaseError(err)
	}
	for _, e := range entries {
		seconds, ok := reminders.ParseLegacyTummyDuration(e.Notes)
		if !ok || seconds == 0 {
			result.Skipped++
			continue
		}
		if err := s.entries.SetTummyTimeSeconds(ctx, e.ID, seconds); err != nil {
			return result, apperrors.NewDatabaseError(err).WithContext("entry_id", e.ID)
		}
		result.Updated++
	}
	logger.Info("Tummy time durations imported", "updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}
