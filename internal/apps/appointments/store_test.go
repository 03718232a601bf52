package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// updateSQL opens a mocked database that records every UPDATE statement.
func updateSQL(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *[]string) {
	t.Helper()
	var statements []string
	matcher := sqlmock.QueryMatcherFunc(func(_, actual string) error {
		statements = append(statements, actual)
		return nil
	})
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock, &statements
}

func preloaded() *models.Appointment {
	childID, clinicID := uuid.New(), uuid.New()
	return &models.Appointment{
		ID:              uuid.New(),
		ParentID:        uuid.New(),
		ChildID:         childID,
		Child:           &models.Child{ID: childID, Name: "Amina"},
		ClinicID:        clinicID,
		Clinic:          &models.Clinic{ID: clinicID, Name: "Riverside"},
		AppointmentDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:30",
		Notes:           "bring vaccination card",
		Status:          models.AppointmentConfirmed,
	}
}

func TestUpdateLeavesReminderColumnsAlone(t *testing.T) {
	db, mock, statements := updateSQL(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewStore(db).Update(context.Background(), preloaded(), false))
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.Contains(t, sql, `UPDATE "appointments" SET`)
	assert.Contains(t, sql, `"notes"=`)
	assert.NotContains(t, sql, "reminder_sent")
	assert.NotContains(t, sql, "children")
	assert.NotContains(t, sql, "clinics")
}

func TestRescheduleWritesReminderColumns(t *testing.T) {
	db, mock, statements := updateSQL(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewStore(db).Update(context.Background(), preloaded(), true))
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], `"reminder_sent"=`)
	assert.Contains(t, (*statements)[0], `"reminder_sent_at"=`)
}
