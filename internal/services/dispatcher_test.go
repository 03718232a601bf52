package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

func testUser(prefs models.NotificationPreferences, phone string) *models.User {
	return &models.User{
		ID:          uuid.New(),
		Email:       "parent@example.com",
		FirstName:   "Ada",
		LastName:    "Obi",
		Phone:       phone,
		Preferences: prefs,
		IsActive:    true,
	}
}

func newTestDispatcher(store *memNotificationWriter, users *memUserStore, mailer Mailer, sms SMSSender, ttl time.Duration) *Dispatcher {
	d := NewDispatcher(store, users, mailer, sms, ttl)
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }
	return d
}

func TestNotifyPersistsAndSendsEnabledChannels(t *testing.T) {
	user := testUser(models.NotificationPreferences{Email: true, SMS: true}, "+15551234567")
	store := &memNotificationWriter{}
	mailer := &recordingMailer{}
	sms := &recordingSMS{}
	d := newTestDispatcher(store, newMemUserStore(user), mailer, sms, 24*time.Hour)

	n, err := d.Notify(context.Background(), NotificationRequest{
		UserID:  user.ID,
		Type:    models.NotificationVaccinationReminder,
		Title:   "Upcoming Vaccination",
		Message: "MMR dose 1 is due soon",
		Data:    map[string]interface{}{"vaccinationId": "abc"},
	})
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, models.PriorityMedium, n.Priority)
	require.NotNil(t, n.ExpiresAt)
	assert.Equal(t, d.now().Add(24*time.Hour), *n.ExpiresAt)

	var data map[string]string
	require.NoError(t, json.Unmarshal(n.Data, &data))
	assert.Equal(t, "abc", data["vaccinationId"])

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "parent@example.com", mailer.sent[0].To)
	assert.Equal(t, "Upcoming Vaccination", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Text, "Hi Ada")

	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+15551234567|VaxTrack: Upcoming Vaccination - MMR dose 1 is due soon", sms.sent[0])

	assert.NotNil(t, n.Channels.EmailSentAt)
	assert.NotNil(t, n.Channels.SMSSentAt)
	assert.Contains(t, store.marked, ChannelEmail)
	assert.Contains(t, store.marked, ChannelSMS)
}

func TestNotifyRespectsPreferences(t *testing.T) {
	user := testUser(models.NotificationPreferences{Email: false, SMS: true}, "")
	mailer := &recordingMailer{}
	sms := &recordingSMS{}
	d := newTestDispatcher(&memNotificationWriter{}, newMemUserStore(user), mailer, sms, 0)

	n, err := d.Notify(context.Background(), NotificationRequest{UserID: user.ID, Type: models.NotificationSystem, Title: "t", Message: "m"})
	require.NoError(t, err)

	assert.Empty(t, mailer.sent)
	assert.Empty(t, sms.sent, "sms needs a phone number")
	assert.Nil(t, n.ExpiresAt)
	assert.Equal(t, "{}", string(n.Data))
}

func TestNotifyKeepsRecordWhenChannelsFail(t *testing.T) {
	user := testUser(models.NotificationPreferences{Email: true, SMS: true}, "+15551234567")
	store := &memNotificationWriter{}
	d := newTestDispatcher(store, newMemUserStore(user),
		&recordingMailer{Err: errProviderDown}, &recordingSMS{Err: errProviderDown}, time.Hour)

	n, err := d.Notify(context.Background(), NotificationRequest{UserID: user.ID, Type: models.NotificationSystem, Title: "t", Message: "m", Priority: models.PriorityHigh})
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, models.PriorityHigh, n.Priority)
	assert.Nil(t, n.Channels.EmailSentAt)
	assert.Nil(t, n.Channels.SMSSentAt)
	assert.Empty(t, store.marked)
}

func TestNotifyDisabledChannelsAreNotFailures(t *testing.T) {
	user := testUser(models.NotificationPreferences{Email: true}, "")
	store := &memNotificationWriter{}
	d := newTestDispatcher(store, newMemUserStore(user), disabledMailer{}, disabledSMS{}, 0)

	n, err := d.Notify(context.Background(), NotificationRequest{UserID: user.ID, Type: models.NotificationSystem, Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Nil(t, n.Channels.EmailSentAt)
}

func TestNotifyMissingRecipientStillPersists(t *testing.T) {
	store := &memNotificationWriter{}
	mailer := &recordingMailer{}
	d := newTestDispatcher(store, newMemUserStore(), mailer, &recordingSMS{}, 0)

	_, err := d.Notify(context.Background(), NotificationRequest{UserID: uuid.New(), Type: models.NotificationSystem, Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Len(t, store.created, 1)
	assert.Empty(t, mailer.sent)
}

func TestNotifyPersistenceFailureSurfaces(t *testing.T) {
	user := testUser(models.DefaultPreferences(), "")
	mailer := &recordingMailer{}
	d := newTestDispatcher(&memNotificationWriter{CreateErr: errors.New("db down")}, newMemUserStore(user), mailer, &recordingSMS{}, 0)

	_, err := d.Notify(context.Background(), NotificationRequest{UserID: user.ID, Type: models.NotificationSystem, Title: "t", Message: "m"})
	assert.Error(t, err)
	assert.Empty(t, mailer.sent, "nothing is sent for an unsaved notification")
}

func TestEmailForEscapesHTML(t *testing.T) {
	user := testUser(models.DefaultPreferences(), "")
	msg := emailFor(user, &models.Notification{Title: "<b>hi</b>", Message: "a & b"})
	assert.Contains(t, msg.HTML, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, msg.HTML, "a &amp; b")
	assert.Equal(t, "Ada Obi", msg.ToName)
}
