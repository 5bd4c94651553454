package app

import (
	"fmt"
	"strings"
	"time"
)

const displayLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Format(displayLayout)
}

func (a Appointment) String() string {
	return fmt.Sprintf("%s - %s to %s", a.Client, formatTime(a.Start), formatTime(a.End))
}

func ConfirmationMessage(a Appointment) string {
	return fmt.Sprintf("Appointment added for %s from %s to %s.", a.Client, formatTime(a.Start), formatTime(a.End))
}

func SuggestionMessage(s Slot) string {
	return fmt.Sprintf("Suggested time slot: %s to %s", formatTime(s.Start), formatTime(s.End))
}

// Render prints appts one per line under a header, in the order given.
func Render(appts []Appointment) string {
	lines := make([]string, 0, len(appts)+1)
	lines = append(lines, "Scheduled Appointments:")
	for _, a := range appts {
		lines = append(lines, a.String())
	}
	return strings.Join(lines, "\n")
}
