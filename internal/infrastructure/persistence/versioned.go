package persistence

import (
	"gorm.io/gorm"

	"github.com/acaipos/backend/internal/domain/shared"
)

// saveVersioned persists an aggregate with optimistic locking. A fresh
// aggregate (version 1) is inserted; a mutated one is updated only where the
// stored row still carries the version the aggregate was loaded at. When a
// concurrent transaction got there first the update matches zero rows and
// the write is rejected with ErrConcurrencyConflict instead of silently
// overwriting the other writer's state.
func saveVersioned(db *gorm.DB, model interface{}, version int) error {
	if version <= 1 {
		return db.Create(model).Error
	}

	result := db.Model(model).
		Where("version = ?", version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
