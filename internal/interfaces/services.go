package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/services"
)

// UserServiceInterface defines the contract for caregiver operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	SetBabySex(ctx context.Context, user *domain.User, sex domain.Sex) error
}

// ProfileServiceInterface defines the contract for baby profile operations
type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, owner *domain.User, name string, birthDate time.Time, birthTime string) (*domain.BabyProfile, error)
	ListProfiles(ctx context.Context, ownerID uint) ([]domain.BabyProfile, error)
	SelectProfile(ctx context.Context, user *domain.User, profileID string) (*domain.BabyProfile, error)
	ActiveProfile(ctx context.Context, user *domain.User) (*domain.BabyProfile, error)
}

// EntryServiceInterface defines the contract for log entry operations
type EntryServiceInterface interface {
	LogEntry(ctx context.Context, e *domain.LogEntry) error
	UpdateEntry(ctx context.Context, e *domain.LogEntry) error
	GetEntry(ctx context.Context, profileID, id string) (*domain.LogEntry, error)
	DeleteEntry(ctx context.Context, userID int64, profileID, id string) (*domain.LogEntry, error)
	Undo(ctx context.Context, userID int64) (*domain.LogEntry, error)
}

// MeasurementServiceInterface defines the contract for body measurements
type MeasurementServiceInterface interface {
	Record(ctx context.Context, m *domain.Measurement) error
}

// VisitServiceInterface defines the contract for doctor visits
type VisitServiceInterface interface {
	Record(ctx context.Context, v *domain.DoctorVisit) error
	Upcoming(ctx context.Context, profileID string, now time.Time) ([]domain.DoctorVisit, error)
}

// SleepServiceInterface defines the contract for sleep tracking
type SleepServiceInterface interface {
	Start(ctx context.Context, profileID string, at time.Time) (*domain.SleepSession, error)
	Stop(ctx context.Context, profileID string, at time.Time) (*domain.SleepSession, error)
	Asleep(ctx context.Context, profileID string) (*domain.SleepSession, error)
}

// GrowthServiceInterface defines the contract for percentile reports
type GrowthServiceInterface interface {
	Report(ctx context.Context, profile domain.BabyProfile, sex domain.Sex, now time.Time) (*services.GrowthReport, error)
}

// StatsServiceInterface defines the contract for daily and weekly summaries
type StatsServiceInterface interface {
	Day(ctx context.Context, profileID string, now time.Time) (*services.DayStats, error)
	Week(ctx context.Context, profileID string, now time.Time) (*aggregate.WeekSummary, error)
}

// ReminderServiceInterface defines the contract for on-demand reminder evaluation
type ReminderServiceInterface interface {
	Statuses(ctx context.Context, profile domain.BabyProfile, now time.Time) ([]reminders.Status, error)
}

// AIServiceInterface defines the contract for the assistant chat
type AIServiceInterface interface {
	Enabled() bool
	Ask(ctx context.Context, question, careSummary string) (string, error)
}

var (
	_ UserServiceInterface        = (*services.UserService)(nil)
	_ ProfileServiceInterface     = (*services.ProfileService)(nil)
	_ EntryServiceInterface       = (*services.EntryService)(nil)
	_ MeasurementServiceInterface = (*services.MeasurementService)(nil)
	_ VisitServiceInterface       = (*services.VisitService)(nil)
	_ SleepServiceInterface       = (*services.SleepService)(nil)
	_ GrowthServiceInterface      = (*services.GrowthService)(nil)
	_ StatsServiceInterface       = (*services.StatsService)(nil)
	_ ReminderServiceInterface    = (*services.ReminderService)(nil)
	_ AIServiceInterface          = (*services.AIService)(nil)
)
