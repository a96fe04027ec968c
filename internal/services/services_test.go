package services

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/growth"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, time.UTC)
}

type testEnv struct {
	users        *UserService
	profiles     *ProfileService
	entries      *EntryService
	measurements *MeasurementService
	visits       *VisitService
	sleep        *SleepService
	stats        *StatsService
	growth       *GrowthService
	reminders    *ReminderService
	state        *state.Manager
	entryRepo    *repository.EntryRepository
	db           *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	sleepRepo := repository.NewSleepRepository(db)

	st := state.NewManager()
	env := &testEnv{
		users:        NewUserService(userRepo),
		profiles:     NewProfileService(profileRepo, userRepo),
		entries:      NewEntryService(entryRepo, st, 2*time.Minute),
		measurements: NewMeasurementService(measurementRepo),
		visits:       NewVisitService(repository.NewVisitRepository(db)),
		sleep:        NewSleepService(sleepRepo),
		growth:       NewGrowthService(measurementRepo),
		reminders:    NewReminderService(reminders.NewEngine(reminders.DefaultConfig(), reminders.IronDosingConfig(0, time.Time{})), entryRepo, time.UTC),
		state:        st,
		entryRepo:    entryRepo,
		db:           db,
	}
	env.stats = NewStatsService(entryRepo, env.sleep)
	fixed := func() time.Time { return testNow }
	env.profiles.now = fixed
	env.entries.now = fixed
	env.measurements.now = fixed
	return env
}

func (env *testEnv) newCaregiver(t *testing.T) (*domain.User, *domain.BabyProfile) {
	t.Helper()
	ctx := context.Background()
	user, err := env.users.RegisterUser(ctx, 42, 4200, "ada", "Ada", "")
	require.NoError(t, err)
	profile, err := env.profiles.CreateProfile(ctx, user, "Baby", at(1, 0, 0), "06:30")
	require.NoError(t, err)
	return user, profile
}

func TestProfileService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.users.RegisterUser(ctx, 42, 4200, "ada", "Ada", "")
	require.NoError(t, err)

	_, err = env.profiles.ActiveProfile(ctx, user)
	assert.True(t, stderrors.Is(err, apperrors.ErrNoActiveProfile))

	_, err = env.profiles.CreateProfile(ctx, user, "  ", at(1, 0, 0), "")
	assert.Error(t, err)
	_, err = env.profiles.CreateProfile(ctx, user, "Baby", at(11, 0, 0), "")
	assert.Error(t, err, "birth date in the future")
	_, err = env.profiles.CreateProfile(ctx, user, "Baby", at(1, 0, 0), "25:99")
	assert.Error(t, err)

	profile, err := env.profiles.CreateProfile(ctx, user, "Baby", at(1, 0, 0), "06:30")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, user.ActiveProfileID)

	reloaded, err := env.users.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	active, err := env.profiles.ActiveProfile(ctx, reloaded)
	require.NoError(t, err)
	assert.Equal(t, "Baby", active.Name)

	stranger, err := env.users.RegisterUser(ctx, 7, 700, "", "", "")
	require.NoError(t, err)
	_, err = env.profiles.SelectProfile(ctx, stranger, profile.ID)
	assert.True(t, stderrors.Is(err, apperrors.ErrProfileNotFound))

	require.NoError(t, env.profiles.UpdateBirthStats(ctx, active, 3400, 51))
	assert.Error(t, env.profiles.UpdateBirthStats(ctx, active, -1, 51))

	assert.Error(t, env.users.SetBabySex(ctx, user, "unknown"))
	require.NoError(t, env.users.SetBabySex(ctx, user, domain.SexFemale))
	assert.Equal(t, domain.SexFemale, user.BabySex)

	_, err = env.users.GetUserByTelegramID(ctx, 999)
	assert.True(t, stderrors.Is(err, apperrors.ErrUserNotFound))
}

func TestEntryServiceValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name  string
		entry domain.LogEntry
	}{
		{"no profile", domain.LogEntry{Timestamp: at(10, 9, 0), Breastfed: true}},
		{"no time", domain.LogEntry{ProfileID: "p1", Breastfed: true}},
		{"future", domain.LogEntry{ProfileID: "p1", Timestamp: testNow.Add(time.Hour), Breastfed: true}},
		{"negative volume", domain.LogEntry{ProfileID: "p1", Timestamp: at(10, 9, 0), FormulaMl: -10}},
		{"negative tummy", domain.LogEntry{ProfileID: "p1", Timestamp: at(10, 9, 0), TummyTime: true, TummyTimeSeconds: -1}},
		{"empty", domain.LogEntry{ProfileID: "p1", Timestamp: at(10, 9, 0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.entry
			assert.Error(t, env.entries.LogEntry(ctx, &e))
		})
	}
}

func TestEntryServiceDeleteAndUndo(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user, profile := env.newCaregiver(t)

	e := &domain.LogEntry{ProfileID: profile.ID, Timestamp: at(10, 9, 0), FormulaMl: 90, Notes: "after bath"}
	require.NoError(t, env.entries.LogEntry(ctx, e))

	deleted, err := env.entries.DeleteEntry(ctx, user.TelegramID, profile.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, deleted.ID)

	day, err := env.entries.ListDay(ctx, profile.ID, testNow)
	require.NoError(t, err)
	assert.Empty(t, day)

	restored, err := env.entries.Undo(ctx, user.TelegramID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, restored.ID)

	day, err = env.entries.ListDay(ctx, profile.ID, testNow)
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, 90.0, day[0].FormulaMl)
	assert.Equal(t, "after bath", day[0].Notes)
	assert.True(t, day[0].Timestamp.Equal(e.Timestamp))

	_, err = env.entries.Undo(ctx, user.TelegramID)
	assert.True(t, stderrors.Is(err, apperrors.ErrUndoExpired))

	_, err = env.entries.DeleteEntry(ctx, user.TelegramID, "other-profile", e.ID)
	assert.True(t, stderrors.Is(err, apperrors.ErrEntryNotFound))
}

func TestEntryServiceUndoKeepsEntryWhenRestoreFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user, profile := env.newCaregiver(t)

	e := &domain.LogEntry{ProfileID: profile.ID, Timestamp: at(10, 9, 0), FormulaMl: 90}
	require.NoError(t, env.entries.LogEntry(ctx, e))
	_, err := env.entries.DeleteEntry(ctx, user.TelegramID, profile.ID, e.ID)
	require.NoError(t, err)

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = env.entries.Undo(ctx, user.TelegramID)
	require.Error(t, err)
	assert.False(t, stderrors.Is(err, apperrors.ErrUndoExpired))

	pending, err := env.state.TakeUndo(ctx, user.TelegramID)
	require.NoError(t, err)
	require.NotNil(t, pending, "failed restore must leave the deletion undoable")
	assert.Equal(t, e.ID, pending.ID)
	assert.Equal(t, 90.0, pending.FormulaMl)
}

func TestMeasurementServiceScopesToProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user, profile := env.newCaregiver(t)
	other, err := env.profiles.CreateProfile(ctx, user, "Sibling", at(1, 0, 0), "")
	require.NoError(t, err)

	m := &domain.Measurement{ProfileID: profile.ID, MeasuredAt: at(5, 9, 0), WeightG: 3500}
	require.NoError(t, env.measurements.Record(ctx, m))

	_, err = env.measurements.Get(ctx, other.ID, m.ID)
	assert.True(t, stderrors.Is(err, apperrors.ErrMeasurementNotFound))

	moved := *m
	moved.ProfileID = other.ID
	moved.WeightG = 3600
	assert.True(t, stderrors.Is(env.measurements.Update(ctx, &moved), apperrors.ErrMeasurementNotFound))
	assert.True(t, stderrors.Is(env.measurements.Delete(ctx, other.ID, m.ID), apperrors.ErrMeasurementNotFound))

	kept, err := env.measurements.List(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, 3500.0, kept[0].WeightG)

	edit := *m
	edit.WeightG = 3550
	require.NoError(t, env.measurements.Update(ctx, &edit))
	require.NoError(t, env.measurements.Delete(ctx, profile.ID, m.ID))
	assert.True(t, stderrors.Is(env.measurements.Delete(ctx, profile.ID, m.ID), apperrors.ErrMeasurementNotFound))
}

func TestEntryServiceUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, profile := env.newCaregiver(t)

	e := &domain.LogEntry{ProfileID: profile.ID, Timestamp: at(10, 9, 0), Breastfed: true}
	require.NoError(t, env.entries.LogEntry(ctx, e))

	edit := *e
	edit.Breastfed = false
	edit.BreastMilkMl = 60
	require.NoError(t, env.entries.UpdateEntry(ctx, &edit))

	got, err := env.entries.GetEntry(ctx, profile.ID, e.ID)
	require.NoError(t, err)
	assert.False(t, got.Breastfed)
	assert.Equal(t, 60.0, got.BreastMilkMl)

	missing := edit
	missing.ID = "nope"
	assert.True(t, stderrors.Is(env.entries.UpdateEntry(ctx, &missing), apperrors.ErrEntryNotFound))
}

func TestBackfillTummyDurations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, profile := env.newCaregiver(t)

	for _, e := range []*domain.LogEntry{
		{ProfileID: profile.ID, Timestamp: at(9, 9, 0), TummyTime: true, Notes: "5 min 30 sek"},
		{ProfileID: profile.ID, Timestamp: at(9, 10, 0), TummyTime: true, Notes: "on the mat"},
		{ProfileID: profile.ID, Timestamp: at(9, 11, 0), TummyTime: true, TummyTimeSeconds: 60, Notes: "9 min"},
	} {
		require.NoError(t, env.entries.LogEntry(ctx, e))
	}

	result, err := env.entries.BackfillTummyDurations(ctx)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Updated: 1, Skipped: 1}, result)

	all, err := env.entries.ListAll(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 330, all[0].TummyTimeSeconds)
	assert.Equal(t, 0, all[1].TummyTimeSeconds)
	assert.Equal(t, 60, all[2].TummyTimeSeconds, "structured duration wins over notes")
}

func TestMeasurementAndGrowth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, profile := env.newCaregiver(t)

	assert.Error(t, env.measurements.Record(ctx, &domain.Measurement{ProfileID: profile.ID, MeasuredAt: at(5, 9, 0)}))
	assert.Error(t, env.measurements.Record(ctx, &domain.Measurement{ProfileID: profile.ID, MeasuredAt: at(5, 9, 0), WeightG: 4.2}), "kilograms instead of grams")
	assert.Error(t, env.measurements.Record(ctx, &domain.Measurement{ProfileID: profile.ID, MeasuredAt: at(5, 9, 0), HeightCm: 540}))

	require.NoError(t, env.measurements.Record(ctx, &domain.Measurement{ProfileID: profile.ID, MeasuredAt: at(1, 7, 0), WeightG: 3300, HeightCm: 49.9}))
	require.NoError(t, env.measurements.Record(ctx, &domain.Measurement{ProfileID: profile.ID, MeasuredAt: at(9, 9, 0), WeightG: 3600}))

	report, err := env.growth.Report(ctx, *profile, domain.SexMale, testNow)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, []growth.Metric{growth.MetricHead}, report.Missing)

	weight := report.Results[0]
	assert.Equal(t, growth.MetricWeight, weight.Metric)
	assert.Equal(t, 3.6, weight.Value)
	assert.Equal(t, "kg", weight.Unit)
	assert.Greater(t, weight.Percentile, 50.0, "3.6 kg at ~8 days uses the birth row")

	length := report.Results[1]
	assert.Equal(t, 49.9, length.Value)
	assert.Equal(t, 50.0, length.Percentile)
	assert.Equal(t, "typical range (15th-85th)", length.Label)
}
