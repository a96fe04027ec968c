package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	Timezone      string
	MetricsAddr   string
	DB            DBConfig
	Redis         RedisConfig
	Logger        LoggerConfig
	Care          CareConfig
}

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
	// MigrateDir holds optional extra *.sql migrations
	MigrateDir string
}

// DSN returns the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.DBName, c.Port)
}

// RedisConfig is optional; an empty host keeps conversation state in memory.
type RedisConfig struct {
	Host string
	Port string
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

// CareConfig holds the care-routine constants that drive reminders.
type CareConfig struct {
	FeedingInterval   time.Duration
	FeedingCooldown   time.Duration
	SterilizationDays int
	BathingDays       int
	IronDoseInterval  time.Duration
	IronDosesPerDay   int
	IronCourseDays    int
	IronCourseStart   time.Time
	ReminderTick      time.Duration
	UndoWindow        time.Duration
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envParser collects parse failures so Load can report them all at once.
type envParser struct {
	errs []error
}

func (p *envParser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return def
	}
	return v
}

func (p *envParser) float(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a number", key, raw))
		return def
	}
	return v
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a duration", key, raw))
		return def
	}
	return v
}

func (p *envParser) date(key string) time.Time {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Time{}
	}
	v, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a YYYY-MM-DD date", key, raw))
		return time.Time{}
	}
	return v
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	return load(true)
}

// LoadOperator is Load for the operator CLI, which does not need the bot token.
func LoadOperator() (*Config, error) {
	return load(false)
}

func load(requireToken bool) (*Config, error) {
	p := &envParser{}
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		Timezone:      getEnvOrDefault("TIMEZONE", "UTC"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		DB: DBConfig{
			Driver:     strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverPostgres)),
			Host:       getEnvOrDefault("DB_HOST", "localhost"),
			Port:       getEnvOrDefault("DB_PORT", "5432"),
			User:       getEnvOrDefault("DB_USER", "postgres"),
			Password:   getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:     getEnvOrDefault("DB_NAME", "babycare_helper"),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "data/babycare.db"),
			MigrateDir: getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Care: CareConfig{
			FeedingInterval:   hours(p.float("FEEDING_INTERVAL_HOURS", 2)),
			FeedingCooldown:   time.Duration(p.int("FEEDING_COOLDOWN_MINUTES", 30)) * time.Minute,
			SterilizationDays: p.int("STERILIZATION_DAYS", reminders.DefaultSterilizationDays),
			BathingDays:       p.int("BATHING_DAYS", reminders.DefaultBathingDays),
			IronDoseInterval:  hours(p.float("IRON_DOSE_INTERVAL_HOURS", 4)),
			IronDosesPerDay:   p.int("IRON_DOSES_PER_DAY", reminders.DefaultDosesPerDay),
			IronCourseDays:    p.int("IRON_COURSE_DAYS", 0),
			IronCourseStart:   p.date("IRON_COURSE_START"),
			ReminderTick:      p.duration("REMINDER_TICK", time.Minute),
			UndoWindow:        p.duration("UNDO_WINDOW", 2*time.Minute),
		},
	}

	errs := append(p.errs, cfg.validateRuntime())
	if requireToken {
		errs = append(errs, cfg.validateBot())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would make the bot misbehave at runtime.
func (c *Config) Validate() error {
	return errors.Join(c.validateBot(), c.validateRuntime())
}

func (c *Config) validateBot() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}

func (c *Config) validateRuntime() error {
	var errs []error
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres"))
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DB.Driver))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	care := c.Care
	if care.FeedingInterval <= 0 {
		errs = append(errs, errors.New("FEEDING_INTERVAL_HOURS must be positive"))
	}
	if care.FeedingCooldown < 0 {
		errs = append(errs, errors.New("FEEDING_COOLDOWN_MINUTES must not be negative"))
	}
	if care.SterilizationDays < 1 || care.BathingDays < 1 {
		errs = append(errs, errors.New("STERILIZATION_DAYS and BATHING_DAYS must be at least 1"))
	}
	if care.IronDoseInterval < 0 || care.IronDosesPerDay < 0 || care.IronCourseDays < 0 {
		errs = append(errs, errors.New("iron dosing values must not be negative"))
	}
	if care.IronCourseDays > 0 && care.IronCourseStart.IsZero() {
		errs = append(errs, errors.New("IRON_COURSE_START is required when IRON_COURSE_DAYS is set"))
	}
	if care.ReminderTick < time.Second {
		errs = append(errs, errors.New("REMINDER_TICK must be at least 1s"))
	}
	if care.UndoWindow <= 0 {
		errs = append(errs, errors.New("UNDO_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

// Location returns the caregiver time zone used for calendar-day checks.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Reminders builds the reminder engine configuration.
func (c *Config) Reminders() reminders.Config {
	cfg := reminders.DefaultConfig()
	cfg.FeedingInterval = c.Care.FeedingInterval
	cfg.FeedingCooldown = c.Care.FeedingCooldown
	cfg.SterilizationDays = c.Care.SterilizationDays
	cfg.BathingDays = c.Care.BathingDays
	return cfg
}

// IronDosing builds the iron course configuration. The course start is
// interpreted in the caregiver time zone.
func (c *Config) IronDosing() reminders.DosingConfig {
	start := c.Care.IronCourseStart
	if !start.IsZero() {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.Location())
	}
	dosing := reminders.IronDosingConfig(c.Care.IronCourseDays, start)
	dosing.DoseInterval = c.Care.IronDoseInterval
	dosing.DosesPerDay = c.Care.IronDosesPerDay
	return dosing
}
