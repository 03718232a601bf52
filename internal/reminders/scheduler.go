package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/influxdata/cron"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/logging"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
)

// runTimeout bounds a single scan.
const runTimeout = 10 * time.Minute

// Summary counts what one scan did.
type Summary struct {
	VaccinationReminders int `json:"vaccinationReminders"`
	AppointmentReminders int `json:"appointmentReminders"`
	Skipped              int `json:"skipped"`
	Failed               int `json:"failed"`
}

type Options struct {
	Cron      string
	Lookahead time.Duration
	// DedupeVaccinations suppresses a vaccination reminder when the scan
	// already sent one within the lookahead window. Off by default, which
	// re-notifies on every run until the vaccination leaves the window.
	DedupeVaccinations bool
}

// Scheduler scans for upcoming vaccinations and appointments on a cron
// schedule and notifies parents.
type Scheduler struct {
	store    Store
	notifier apps.Notifier
	opts     Options
	spec     cron.Parsed
	now      func() time.Time
	log      *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewScheduler(store Store, notifier apps.Notifier, opts Options) (*Scheduler, error) {
	spec, err := cron.ParseUTC(opts.Cron)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", opts.Cron, err)
	}
	return &Scheduler{
		store:    store,
		notifier: notifier,
		opts:     opts,
		spec:     spec,
		now:      time.Now,
		log:      logging.Component("reminders"),
	}, nil
}

// Start launches the schedule loop. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
	s.log.Info("reminder scheduler started", "cron", s.opts.Cron, "lookahead", s.opts.Lookahead.String())
}

// Stop ends the loop and waits for an in-flight scan to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *Scheduler) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		next, err := s.spec.Next(s.now())
		if err != nil {
			s.log.Error("no next reminder run", "error", err.Error())
			return
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		summary := s.RunOnce(ctx, s.now())
		cancel()
		s.log.Info("reminder scan completed",
			"vaccinations", summary.VaccinationReminders,
			"appointments", summary.AppointmentReminders,
			"skipped", summary.Skipped,
			"failed", summary.Failed,
		)
	}
}

// RunOnce scans the window [now, now+lookahead] once.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) Summary {
	var summary Summary
	to := now.Add(s.opts.Lookahead)
	s.vaccinations(ctx, now, to, &summary)
	s.appointments(ctx, now, to, &summary)
	return summary
}

func (s *Scheduler) vaccinations(ctx context.Context, from, to time.Time, summary *Summary) {
	due, err := s.store.DueVaccinations(ctx, from, to)
	if err != nil {
		s.log.Error("load due vaccinations failed", "error", err.Error())
		summary.Failed++
		return
	}

	for i := range due {
		v := &due[i]
		child := v.Child
		if child == nil || !child.IsActive || child.Parent == nil || !child.Parent.IsActive {
			s.log.Warn("skipping vaccination reminder: child or parent missing or inactive", "vaccination_id", v.ID.String())
			summary.Skipped++
			continue
		}
		parent := child.Parent

		if s.opts.DedupeVaccinations {
			seen, err := s.store.RecentlyReminded(ctx, parent.ID, v.ID, from.Add(-s.opts.Lookahead))
			if err != nil {
				s.log.Error("reminder dedupe lookup failed", "vaccination_id", v.ID.String(), "error", err.Error())
				summary.Failed++
				continue
			}
			if seen {
				summary.Skipped++
				continue
			}
		}

		_, err := s.notifier.Notify(ctx, services.NotificationRequest{
			UserID:  parent.ID,
			Type:    models.NotificationVaccinationReminder,
			Title:   "Upcoming Vaccination",
			Message: fmt.Sprintf("%s has %s scheduled on %s", child.Name, v.VaccineName, v.VaccineDate.Format("Jan 2, 2006")),
			Data: map[string]interface{}{
				"vaccinationId": v.ID.String(),
				"trigger":       TriggerScan,
			},
			Priority:  models.PriorityHigh,
			ActionURL: "/vaccinations",
		})
		if err != nil {
			s.log.Error("vaccination reminder failed", "vaccination_id", v.ID.String(), "error", err.Error())
			summary.Failed++
			continue
		}
		summary.VaccinationReminders++
	}
}

// appointments claims each reminder before notifying so that overlapping or
// repeated runs notify at most once per appointment.
func (s *Scheduler) appointments(ctx context.Context, from, to time.Time, summary *Summary) {
	due, err := s.store.DueAppointments(ctx, from, to)
	if err != nil {
		s.log.Error("load due appointments failed", "error", err.Error())
		summary.Failed++
		return
	}

	for i := range due {
		a := &due[i]
		if a.Parent == nil || !a.Parent.IsActive || a.Child == nil {
			s.log.Warn("skipping appointment reminder: child or parent missing or inactive", "appointment_id", a.ID.String())
			summary.Skipped++
			continue
		}

		claimed, err := s.store.ClaimAppointment(ctx, a.ID, s.now())
		if err != nil {
			s.log.Error("claim appointment reminder failed", "appointment_id", a.ID.String(), "error", err.Error())
			summary.Failed++
			continue
		}
		if !claimed {
			summary.Skipped++
			continue
		}

		_, err = s.notifier.Notify(ctx, services.NotificationRequest{
			UserID: a.Parent.ID,
			Type:   models.NotificationAppointmentReminder,
			Title:  "Upcoming Appointment",
			Message: fmt.Sprintf("Appointment for %s on %s at %s",
				a.Child.Name, a.AppointmentDate.Format("Jan 2, 2006"), a.AppointmentTime),
			Data:      map[string]interface{}{"appointmentId": a.ID.String()},
			Priority:  models.PriorityHigh,
			ActionURL: "/appointments",
		})
		if err != nil {
			s.log.Error("appointment reminder failed", "appointment_id", a.ID.String(), "error", err.Error())
			summary.Failed++
			continue
		}
		summary.AppointmentReminders++
	}
}
