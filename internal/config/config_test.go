package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
)

var careKeys = []string{
	"FEEDING_INTERVAL_HOURS", "FEEDING_COOLDOWN_MINUTES", "STERILIZATION_DAYS", "BATHING_DAYS",
	"IRON_DOSE_INTERVAL_HOURS", "IRON_DOSES_PER_DAY", "IRON_COURSE_DAYS", "IRON_COURSE_START",
	"REMINDER_TICK", "UNDO_WINDOW", "DB_DRIVER", "TIMEZONE", "REDIS_HOST", "LOG_LEVEL",
}

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range careKeys {
		t.Setenv(key, "")
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)

	assert.Equal(t, 2*time.Hour, cfg.Care.FeedingInterval)
	assert.Equal(t, 30*time.Minute, cfg.Care.FeedingCooldown)
	assert.Equal(t, 2, cfg.Care.SterilizationDays)
	assert.Equal(t, 2, cfg.Care.BathingDays)
	assert.Equal(t, 4*time.Hour, cfg.Care.IronDoseInterval)
	assert.Equal(t, 2, cfg.Care.IronDosesPerDay)
	assert.Equal(t, time.Minute, cfg.Care.ReminderTick)
	assert.Equal(t, 2*time.Minute, cfg.Care.UndoWindow)
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("FEEDING_INTERVAL_HOURS", "2.5")
	t.Setenv("IRON_COURSE_DAYS", "30")
	t.Setenv("IRON_COURSE_START", "2024-06-01")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr())
	assert.Equal(t, 150*time.Minute, cfg.Care.FeedingInterval)
	assert.Equal(t, logger.LevelDebug, cfg.Logger.Level)

	rc := cfg.Reminders()
	assert.Equal(t, 150*time.Minute, rc.FeedingInterval)
	assert.Equal(t, 0.5, rc.TummyTimeShare)

	iron := cfg.IronDosing()
	assert.Equal(t, "Iron", iron.Name)
	assert.Equal(t, 30, iron.CourseDays)
	assert.Equal(t, "Europe/Berlin", iron.CourseStart.Location().String())
	assert.Equal(t, 1, iron.CourseStart.Day())
}

func TestLoadReportsEveryProblem(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("STERILIZATION_DAYS", "two")
	t.Setenv("IRON_COURSE_DAYS", "10")

	_, err := Load()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "TELEGRAM_BOT_TOKEN")
	assert.Contains(t, msg, "DB_DRIVER")
	assert.Contains(t, msg, `STERILIZATION_DAYS: "two"`)
	assert.Contains(t, msg, "IRON_COURSE_START")
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus"}
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadOperatorSkipsToken(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadOperator()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)

	_, err = Load()
	assert.ErrorContains(t, err, "TELEGRAM_BOT_TOKEN")
}
