package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type failingHandler struct{ calls int }

func (f *failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (f *failingHandler) Handle(context.Context, slog.Record) error {
	f.calls++
	return errors.New("sink unavailable")
}
func (f *failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }
func (f *failingHandler) WithGroup(string) slog.Handler      { return f }

func TestMultiHandlerFansOutPastFailures(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingHandler{}
	h := NewMultiHandler(failing, slog.NewJSONHandler(&buf, nil))

	log := slog.New(h).With("component", "test")
	log.Info("hello", "n", 1)

	assert.Equal(t, 1, failing.calls)
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "test", line["component"])
}

func TestMultiHandlerEnabledByAnyHandler(t *testing.T) {
	errorsOnly := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	h := NewMultiHandler(errorsOnly, &PGHandler{})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestPurgeDeletesOldLogsAndExpiredNotifications(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "system_logs" WHERE timestamp < $1`)).
		WithArgs(now.Add(-logRetention)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "notifications" WHERE expires_at IS NOT NULL AND expires_at < $1`)).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	Purge(db, now)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGHandlerMapsKnownAttrs(t *testing.T) {
	h := &PGHandler{sink: &pgSink{}}
	log := slog.New(h).With("component", "reminders")

	log.Error("scan failed", "error", "timeout", "user_id", "u-1", "appointment_id", "a-1")
	log.Info("ignored")

	require.Len(t, h.sink.buffer, 1)
	entry := h.sink.buffer[0]
	assert.Equal(t, "reminders", entry.Component)
	assert.Equal(t, "timeout", entry.Error)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	assert.JSONEq(t, `{"appointment_id":"a-1"}`, string(entry.Extra))
}
