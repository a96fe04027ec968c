package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"gorm.io/gorm"
)

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

var migrations = make(map[string]Migration)

// Register adds a new migration to the registry
func Register(id string, up, down func(*gorm.DB) error) {
	migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// Registered returns the ids of all known migrations in execution order
func Registered() []string {
	ids := make([]string, 0, len(migrations))
	for id := range migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RunMigrations executes all pending migrations
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	executedMap := make(map[string]bool)
	for _, m := range executed {
		executedMap[m.ID] = true
	}

	for _, id := range Registered() {
		if executedMap[id] {
			continue
		}
		migration := migrations[id]
		logger.Info("Running migration", "id", id)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("failed to run migration %s: %w", id, err)
			}
			if err := tx.Create(&MigrationRecord{ID: id}).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", id, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Rollback reverts the most recently applied migration that has a Down step
func Rollback(db *gorm.DB) (string, error) {
	var last MigrationRecord
	if err := db.Order("id desc").First(&last).Error; err != nil {
		return "", fmt.Errorf("no applied migrations: %w", err)
	}
	migration, ok := migrations[last.ID]
	if !ok || migration.Down == nil {
		return "", fmt.Errorf("migration %s cannot be rolled back", last.ID)
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := migration.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&MigrationRecord{}, "id = ?", last.ID).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to roll back %s: %w", last.ID, err)
	}
	return last.ID, nil
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// downMarker starts the rollback half of a .sql migration
const downMarker = "-- +down"

// LoadSQLMigrations registers every *.sql file in dir under its base name. The file is
// executed as one statement batch; text after a "-- +down" line becomes its rollback.
// A missing directory registers nothing.
func LoadSQLMigrations(dir string) error {
	if dir == "" {
		return nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list sql migrations in %s: %w", dir, err)
	}

	for _, path := range paths {
		name := filepath.Base(path)
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read sql migration %s: %w", name, err)
		}
		up, down, _ := strings.Cut(string(raw), downMarker)
		if strings.TrimSpace(up) == "" {
			return fmt.Errorf("sql migration %s has nothing to apply", name)
		}
		var rollback func(*gorm.DB) error
		if strings.TrimSpace(down) != "" {
			rollback = exec(down)
		}
		Register(strings.TrimSuffix(name, ".sql"), exec(up), rollback)
	}
	return nil
}
