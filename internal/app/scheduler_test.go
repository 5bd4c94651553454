package app

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// at returns hour:min on a fixed reference day.
func at(hour, min int) time.Time {
	return time.Date(2026, time.October, 16, hour, min, 0, 0, time.UTC)
}

func newTestScheduler(t *testing.T, hours WorkingHours) (*Scheduler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	n := 0
	s, err := NewScheduler(hours,
		WithLogger(zap.New(core)),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("appt-%d", n)
		}),
	)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s, logs
}

func mustAdd(t *testing.T, s *Scheduler, start time.Time, mins int, client string) Appointment {
	t.Helper()
	a, err := s.Add(start, mins, client)
	if err != nil {
		t.Fatalf("Add(%s, %d, %q): %v", start.Format("15:04"), mins, client, err)
	}
	return a
}

func TestNewScheduler_ValidatesHours(t *testing.T) {
	tests := []struct {
		hours   WorkingHours
		wantErr bool
	}{
		{WorkingHours{9, 17}, false},
		{WorkingHours{0, 23}, false},
		{WorkingHours{17, 17}, true},
		{WorkingHours{18, 9}, true},
		{WorkingHours{-1, 9}, true},
		{WorkingHours{9, 24}, true},
	}
	for _, tt := range tests {
		_, err := NewScheduler(tt.hours)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewScheduler(%+v) err = %v, wantErr %v", tt.hours, err, tt.wantErr)
		}
	}
}

func TestAdd_Scenarios(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())

	a := mustAdd(t, s, at(9, 30), 60, "A")
	if !a.Start.Equal(at(9, 30)) || !a.End.Equal(at(10, 30)) {
		t.Errorf("stored interval = [%s,%s), want [09:30,10:30)", a.Start.Format("15:04"), a.End.Format("15:04"))
	}
	if a.ID != "appt-1" {
		t.Errorf("ID = %q, want appt-1", a.ID)
	}

	_, err := s.Add(at(9, 45), 30, "B")
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("overlapping add err = %v, want ErrOverlap", err)
	}
	if got := err.Error(); got != "Appointment for B overlaps with another appointment." {
		t.Errorf("message = %q", got)
	}

	b := mustAdd(t, s, at(11, 0), 45, "B")
	if !b.End.Equal(at(11, 45)) {
		t.Errorf("end = %s, want 11:45", b.End.Format("15:04"))
	}
}

func TestAdd_WorkingHours(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		mins  int
		want  error
	}{
		{"opening hour", at(9, 0), 30, nil},
		{"before opening", at(8, 59), 30, ErrOutOfHours},
		{"last hour runs past closing", at(16, 59), 240, nil},
		{"closing hour", at(17, 0), 15, ErrOutOfHours},
		{"evening", at(22, 0), 15, ErrOutOfHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestScheduler(t, DefaultWorkingHours())
			_, err := s.Add(tt.start, tt.mins, "C")
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Add: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAdd_OutOfHoursMessage(t *testing.T) {
	s, logs := newTestScheduler(t, DefaultWorkingHours())
	_, err := s.Add(at(7, 0), 30, "Early Bird")
	if err == nil || err.Error() != "Appointment for Early Bird is outside of working hours." {
		t.Fatalf("err = %v", err)
	}
	warn := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warn) != 1 || warn[0].Message != err.Error() {
		t.Fatalf("warn logs = %+v", warn)
	}
}

func TestAdd_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mins   int
		client string
	}{
		{"zero duration", 0, "A"},
		{"negative duration", -30, "A"},
		{"longer than a day", 24*60 + 1, "A"},
		{"overflowing duration", math.MaxInt, "A"},
		{"empty client", 30, ""},
		{"blank client", 30, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestScheduler(t, DefaultWorkingHours())
			_, err := s.Add(at(10, 0), tt.mins, tt.client)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if _, err := s.List(); !errors.Is(err, ErrEmptySchedule) {
				t.Errorf("schedule mutated after invalid add")
			}
		})
	}
}

func TestAdd_FullDayKeepsEndAfterStart(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	a := mustAdd(t, s, at(10, 0), 24*60, "A")
	if !a.End.After(a.Start) || !a.End.Equal(at(10, 0).Add(24*time.Hour)) {
		t.Fatalf("interval = [%v, %v)", a.Start, a.End)
	}
	if _, err := s.Add(at(10, 0), 30, "B"); !errors.Is(err, ErrOverlap) {
		t.Errorf("err = %v, want ErrOverlap", err)
	}
}

func TestAdd_InvalidInputCheckedBeforeHours(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	_, err := s.Add(at(3, 0), -5, "A")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAdd_HoursCheckedBeforeOverlap(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	mustAdd(t, s, at(16, 30), 120, "A")
	// 17:00 is both out of hours and inside A's interval.
	_, err := s.Add(at(17, 0), 15, "B")
	if !errors.Is(err, ErrOutOfHours) {
		t.Fatalf("err = %v, want ErrOutOfHours", err)
	}
}

func TestAdd_BackToBackDoesNotOverlap(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	mustAdd(t, s, at(10, 0), 60, "A")
	mustAdd(t, s, at(11, 0), 30, "B")
	mustAdd(t, s, at(9, 30), 30, "C")

	appts, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(appts) != 3 {
		t.Fatalf("len = %d, want 3", len(appts))
	}
}

func TestAdd_SameIntervalTwiceOverlaps(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	a := mustAdd(t, s, at(13, 15), 50, "A")
	_, err := s.Add(a.Start, 50, "A again")
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("err = %v, want ErrOverlap", err)
	}
	appts, _ := s.List()
	if len(appts) != 1 {
		t.Errorf("len = %d after rejected add, want 1", len(appts))
	}
}

func TestAdd_ConfirmationLogged(t *testing.T) {
	s, logs := newTestScheduler(t, DefaultWorkingHours())
	mustAdd(t, s, at(9, 30), 60, "Client A")

	entries := logs.FilterMessage("Appointment added for Client A from 2026-10-16 09:30:00 to 2026-10-16 10:30:00.").All()
	if len(entries) != 1 {
		t.Fatalf("confirmation not logged, got %+v", logs.All())
	}
	if got := entries[0].ContextMap()["client"]; got != "Client A" {
		t.Errorf("client field = %v", got)
	}
}

func TestInvariants_RandomAdds(t *testing.T) {
	hours := WorkingHours{StartHour: 8, EndHour: 18}
	s, _ := newTestScheduler(t, hours)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		start := at(rng.IntN(24), rng.IntN(60))
		_, _ = s.Add(start, 5+rng.IntN(120), fmt.Sprintf("c%d", i))
	}

	appts, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i, a := range appts {
		if !hours.contains(a.Start.Hour()) {
			t.Errorf("%s starts outside working hours", a)
		}
		if !a.End.After(a.Start) {
			t.Errorf("%s has end <= start", a)
		}
		for _, b := range appts[i+1:] {
			if a.Overlaps(b.Start, b.End) {
				t.Errorf("%s overlaps %s", a, b)
			}
		}
	}
}

func TestList_Empty(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	appts, err := s.List()
	if !errors.Is(err, ErrEmptySchedule) {
		t.Fatalf("err = %v, want ErrEmptySchedule", err)
	}
	if appts != nil {
		t.Errorf("appts = %v, want nil", appts)
	}
	if got := s.Listing(); got != "No appointments scheduled." {
		t.Errorf("Listing() = %q", got)
	}
}

func TestList_SortedAndIdempotent(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	mustAdd(t, s, at(14, 0), 30, "C")
	mustAdd(t, s, at(9, 30), 60, "A")
	mustAdd(t, s, at(11, 0), 45, "B")

	first, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var clients []string
	for _, a := range first {
		clients = append(clients, a.Client)
	}
	if got := strings.Join(clients, ","); got != "A,B,C" {
		t.Errorf("order = %s, want A,B,C", got)
	}

	second, _ := s.List()
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("List not idempotent at %d: %v vs %v", i, first[i], second[i])
		}
	}
	if s.Listing() != s.Listing() {
		t.Error("Listing not idempotent")
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	mustAdd(t, s, at(10, 0), 30, "A")

	appts, _ := s.List()
	appts[0].Client = "mutated"

	again, _ := s.List()
	if again[0].Client != "A" {
		t.Errorf("stored appointment aliased by List result")
	}
}

func TestListing_Render(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultWorkingHours())
	mustAdd(t, s, at(11, 0), 45, "Client B")
	mustAdd(t, s, at(9, 30), 60, "Client A")

	want := "Scheduled Appointments:\n" +
		"Client A - 2026-10-16 09:30:00 to 2026-10-16 10:30:00\n" +
		"Client B - 2026-10-16 11:00:00 to 2026-10-16 11:45:00"
	if got := s.Listing(); got != want {
		t.Errorf("Listing() =\n%s\nwant\n%s", got, want)
	}
}
