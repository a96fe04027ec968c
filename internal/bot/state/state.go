package state

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

// User states constants
const (
	None                    = "none"
	WaitingForBreastMilkMl  = "waiting_for_breast_milk_ml"
	WaitingForFormulaMl     = "waiting_for_formula_ml"
	WaitingForTummyMinutes  = "waiting_for_tummy_minutes"
	WaitingForMeasurement   = "waiting_for_measurement"
	WaitingForProfileName   = "waiting_for_profile_name"
	WaitingForBirthDate     = "waiting_for_birth_date"
	WaitingForVisit         = "waiting_for_visit"
	WaitingForAIQuestion    = "waiting_for_ai_question"
	WaitingForEntryNoteEdit = "waiting_for_entry_note_edit"
)

// Temp data keys
const (
	KeyProfileName = "profile_name"
	KeyEntryID     = "entry_id"
)

// StateManager keeps short-lived per-caregiver data: the conversation step,
// scratch values between steps, reminder cooldowns and the undo buffer.
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)

	SetTempData(userID int64, key, value string)
	GetTempData(userID int64, key string) (string, bool)
	ClearTempData(userID int64)

	// MarkSent records that a notification with tag went out at the given time.
	MarkSent(ctx context.Context, tag string, at time.Time, ttl time.Duration) error
	// LastSent returns the zero time when nothing was sent for tag.
	LastSent(ctx context.Context, tag string) (time.Time, error)

	// PutUndo replaces the caregiver's undo buffer with entry for ttl.
	PutUndo(ctx context.Context, userID int64, entry domain.LogEntry, ttl time.Duration) error
	// TakeUndo empties the buffer and returns what it held, or nil once it expired.
	TakeUndo(ctx context.Context, userID int64) (*domain.LogEntry, error)

	Close() error
}
