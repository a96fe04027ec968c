package migrations

import "gorm.io/gorm"

// Timeline queries always filter by profile and order by time.
func init() {
	Register("0001_log_entries_profile_timestamp",
		exec("CREATE INDEX IF NOT EXISTS idx_log_entries_profile_timestamp ON log_entries (profile_id, timestamp)"),
		exec("DROP INDEX IF EXISTS idx_log_entries_profile_timestamp"))

	Register("0002_measurements_profile_measured_at",
		exec("CREATE INDEX IF NOT EXISTS idx_measurements_profile_measured_at ON measurements (profile_id, measured_at)"),
		exec("DROP INDEX IF EXISTS idx_measurements_profile_measured_at"))
}

func exec(statement string) func(*gorm.DB) error {
	return func(db *gorm.DB) error {
		return db.Exec(statement).Error
	}
}
