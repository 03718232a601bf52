package logging

import (
	"log/slog"
	"time"

	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

const logRetention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs older than 30
// days and notifications past their expiry.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				Purge(db, time.Now())
			case <-done:
				return
			}
		}
	}()
}

// Purge performs a single retention pass relative to now.
func Purge(db *gorm.DB, now time.Time) {
	result := db.Where("timestamp < ?", now.Add(-logRetention)).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
	} else if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}

	result = db.Where("expires_at IS NOT NULL AND expires_at < ?", now).Delete(&models.Notification{})
	if result.Error != nil {
		slog.Error("notification purge failed", "error", result.Error)
	} else if result.RowsAffected > 0 {
		slog.Info("expired notifications purged", "deleted", result.RowsAffected)
	}
}
