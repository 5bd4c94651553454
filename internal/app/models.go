package app

import (
	"fmt"
	"time"
)

// WorkingHours is the daily [StartHour, EndHour) range in which appointments may begin.
type WorkingHours struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// DefaultWorkingHours is 9 AM to 5 PM.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{StartHour: 9, EndHour: 17}
}

// Validate rejects windows outside 0 <= StartHour < EndHour <= 23.
func (w WorkingHours) Validate() error {
	if w.StartHour < 0 || w.EndHour > 23 || w.StartHour >= w.EndHour {
		return fmt.Errorf("invalid working hours %d-%d: want 0 <= start < end <= 23", w.StartHour, w.EndHour)
	}
	return nil
}

// contains reports whether an appointment may begin at the given hour.
func (w WorkingHours) contains(hour int) bool {
	return w.StartHour <= hour && hour < w.EndHour
}

// Appointment is one booked interval [Start, End) for a client.
type Appointment struct {
	ID     string    `json:"id"`
	Client string    `json:"client"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Overlaps uses half-open intervals, so back-to-back appointments do not overlap.
func (a Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.End) && end.After(a.Start)
}

// Slot DTO
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
