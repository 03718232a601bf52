package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
)

type sentNotification struct {
	req services.NotificationRequest
	at  time.Time
}

// memBackend plays both the store and the notifier so dedupe lookups see
// the notifications created by earlier runs.
type memBackend struct {
	clock        func() time.Time
	vaccinations []models.Vaccination
	appointments map[uuid.UUID]*models.Appointment
	sent         []sentNotification
	notifyErr    error
}

var (
	_ Store         = (*memBackend)(nil)
	_ apps.Notifier = (*memBackend)(nil)
)

func newBackend(clock func() time.Time) *memBackend {
	return &memBackend{clock: clock, appointments: map[uuid.UUID]*models.Appointment{}}
}

func (m *memBackend) DueVaccinations(_ context.Context, from, to time.Time) ([]models.Vaccination, error) {
	var out []models.Vaccination
	for _, v := range m.vaccinations {
		if v.Status == models.VaccinationScheduled && !v.VaccineDate.Before(from) && !v.VaccineDate.After(to) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memBackend) RecentlyReminded(_ context.Context, userID, vaccinationID uuid.UUID, since time.Time) (bool, error) {
	for _, s := range m.sent {
		if s.req.UserID == userID &&
			s.req.Type == models.NotificationVaccinationReminder &&
			s.req.Data["vaccinationId"] == vaccinationID.String() &&
			s.req.Data["trigger"] == TriggerScan &&
			!s.at.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBackend) DueAppointments(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range m.appointments {
		if a.Status == models.AppointmentConfirmed && !a.Reminder.Sent &&
			!a.AppointmentDate.Before(from) && !a.AppointmentDate.After(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memBackend) ClaimAppointment(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	a, ok := m.appointments[id]
	if !ok || a.Reminder.Sent {
		return false, nil
	}
	a.Reminder = models.AppointmentReminder{Sent: true, SentAt: &at}
	return true, nil
}

func (m *memBackend) Notify(_ context.Context, req services.NotificationRequest) (*models.Notification, error) {
	if m.notifyErr != nil {
		return nil, m.notifyErr
	}
	m.sent = append(m.sent, sentNotification{req: req, at: m.clock()})
	return &models.Notification{ID: uuid.New(), UserID: req.UserID, Type: req.Type}, nil
}

func (m *memBackend) ofType(typ string) []services.NotificationRequest {
	var out []services.NotificationRequest
	for _, s := range m.sent {
		if s.req.Type == typ {
			out = append(out, s.req)
		}
	}
	return out
}
