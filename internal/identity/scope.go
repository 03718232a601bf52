package identity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy returns a GORM scope restricting rows to those whose column equals
// the caller's id. Every owned-resource query goes through it.
func OwnedBy(column string, userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", userID)
	}
}

// Active filters soft-deleted rows that use an is_active flag.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
