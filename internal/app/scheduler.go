package app

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduler holds the appointment book for a single working-hours window.
// All operations are serialized on one mutex so the overlap check and the
// insert that follows it happen atomically.
type Scheduler struct {
	mu           sync.Mutex
	hours        WorkingHours
	appointments []Appointment

	log   *zap.Logger
	newID func() string
}

type Option func(*Scheduler)

func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator overrides how appointment IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewScheduler(hours WorkingHours, opts ...Option) (*Scheduler, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		hours: hours,
		log:   zap.NewNop(),
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Scheduler) Hours() WorkingHours {
	return s.hours
}

// Add books client for durationMins minutes starting at start.
//
// Only the hour of start is checked against the working window, so an
// appointment starting in the last open hour is accepted even if it runs
// past closing time.
func (s *Scheduler) Add(start time.Time, durationMins int, client string) (Appointment, error) {
	if detail := checkDuration(durationMins); detail != "" {
		return Appointment{}, s.reject(&ScheduleError{Kind: ErrInvalidInput, Client: client, Detail: detail})
	}
	if strings.TrimSpace(client) == "" {
		return Appointment{}, s.reject(&ScheduleError{Kind: ErrInvalidInput, Detail: "client name is required"})
	}
	end := start.Add(minutes(durationMins))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hours.contains(start.Hour()) {
		return Appointment{}, s.reject(&ScheduleError{Kind: ErrOutOfHours, Client: client})
	}
	for _, a := range s.appointments {
		if a.Overlaps(start, end) {
			return Appointment{}, s.reject(&ScheduleError{Kind: ErrOverlap, Client: client})
		}
	}

	appt := Appointment{ID: s.newID(), Client: client, Start: start, End: end}
	s.appointments = append(s.appointments, appt)
	s.log.Info(ConfirmationMessage(appt),
		zap.String("id", appt.ID),
		zap.String("client", client),
		zap.Time("start", start),
		zap.Time("end", end),
	)
	return appt, nil
}

// List returns a copy of the book ordered by start time.
func (s *Scheduler) List() ([]Appointment, error) {
	s.mu.Lock()
	out := slices.Clone(s.appointments)
	s.mu.Unlock()

	if len(out) == 0 {
		err := &ScheduleError{Kind: ErrEmptySchedule}
		s.log.Info(err.Error())
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b Appointment) int {
		return a.Start.Compare(b.Start)
	})
	return out, nil
}

// Listing renders the current book, or the empty-schedule message.
func (s *Scheduler) Listing() string {
	appts, err := s.List()
	if err != nil {
		return err.Error()
	}
	return Render(appts)
}

func (s *Scheduler) reject(err *ScheduleError) error {
	s.log.Warn(err.Error(),
		zap.String("client", err.Client),
		zap.String("reason", err.Kind.Error()),
	)
	return err
}

// maxDurationMins caps a single appointment or slot request at one day.
const maxDurationMins = 24 * 60

// checkDuration returns why durationMins is unusable, or "" when it is fine.
func checkDuration(durationMins int) string {
	switch {
	case durationMins <= 0:
		return "duration must be positive"
	case durationMins > maxDurationMins:
		return fmt.Sprintf("duration must not exceed %d minutes", maxDurationMins)
	}
	return ""
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
