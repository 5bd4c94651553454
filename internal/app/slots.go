package app

import (
	"iter"
	"time"

	"go.uber.org/zap"
)

// slotStep is the granularity of the slot search.
const slotStep = 15 * time.Minute

// SuggestSlot returns the first free start time on the date of on, scanning
// from the opening hour in 15 minute steps. The reference date is explicit so
// the result does not depend on the wall clock.
func (s *Scheduler) SuggestSlot(on time.Time, durationMins int) (time.Time, error) {
	if detail := checkDuration(durationMins); detail != "" {
		return time.Time{}, s.reject(&ScheduleError{Kind: ErrInvalidInput, Detail: detail})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for slot := range s.freeSlots(on, minutes(durationMins)) {
		s.log.Info(SuggestionMessage(slot),
			zap.Time("start", slot.Start),
			zap.Time("end", slot.End),
		)
		return slot.Start, nil
	}

	err := &ScheduleError{Kind: ErrNoSlotAvailable}
	s.log.Info(err.Error(), zap.Int("duration_minutes", durationMins))
	return time.Time{}, err
}

// FreeSlots lists every start time SuggestSlot would accept on that date, in
// order. The first element, if any, is the SuggestSlot result.
func (s *Scheduler) FreeSlots(on time.Time, durationMins int) ([]Slot, error) {
	if detail := checkDuration(durationMins); detail != "" {
		return nil, s.reject(&ScheduleError{Kind: ErrInvalidInput, Detail: detail})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Slot
	for slot := range s.freeSlots(on, minutes(durationMins)) {
		out = append(out, slot)
	}
	return out, nil
}

// freeSlots yields accepted candidates. Callers must hold s.mu.
func (s *Scheduler) freeSlots(on time.Time, length time.Duration) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		year, month, day := on.Date()
		first := time.Date(year, month, day, s.hours.StartHour, 0, 0, 0, on.Location())
		for c := first; c.Hour() < s.hours.EndHour; c = c.Add(slotStep) {
			end := c.Add(length)
			if !s.fits(c, end) {
				continue
			}
			if !yield(Slot{Start: c, End: end}) {
				return
			}
		}
	}
}

// fits compares only the hour of end against closing time: a slot ending at
// 16:59 in a 9-17 window fits, one ending at 17:00 does not. An end on a later
// day never fits.
func (s *Scheduler) fits(start, end time.Time) bool {
	if !sameDay(start, end) || end.Hour() >= s.hours.EndHour {
		return false
	}
	for _, a := range s.appointments {
		if a.Overlaps(start, end) {
			return false
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
