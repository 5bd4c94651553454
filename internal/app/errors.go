package app

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrOutOfHours      = errors.New("outside of working hours")
	ErrOverlap         = errors.New("overlaps with another appointment")
	ErrNoSlotAvailable = errors.New("no available time slots")
	ErrEmptySchedule   = errors.New("no appointments scheduled")
)

// ScheduleError carries the rejection kind plus the client it concerns.
// Error() renders the human-readable status message.
type ScheduleError struct {
	Kind   error
	Client string
	Detail string
}

func (e *ScheduleError) Error() string {
	switch e.Kind {
	case ErrOutOfHours:
		return fmt.Sprintf("Appointment for %s is outside of working hours.", e.Client)
	case ErrOverlap:
		return fmt.Sprintf("Appointment for %s overlaps with another appointment.", e.Client)
	case ErrNoSlotAvailable:
		return "No available time slots found."
	case ErrEmptySchedule:
		return "No appointments scheduled."
	case ErrInvalidInput:
		if e.Client != "" {
			return fmt.Sprintf("Appointment for %s is invalid: %s.", e.Client, e.Detail)
		}
		return fmt.Sprintf("Invalid input: %s.", e.Detail)
	}
	return e.Kind.Error()
}

func (e *ScheduleError) Unwrap() error { return e.Kind }
