package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// timeRange narrows a query on column to [from, to]. A zero bound is open.
func timeRange(db *gorm.DB, column string, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		db = db.Where(column+" >= ?", from.UTC())
	}
	if !to.IsZero() {
		db = db.Where(column+" <= ?", to.UTC())
	}
	return db
}

// deleteByID removes one row and reports gorm.ErrRecordNotFound when nothing matched
func deleteByID(ctx context.Context, db *gorm.DB, model any, id string) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
