package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"appointment-scheduler/internal/app"
)

const demoDuration = 30

func newDemoCmd(opts *rootOptions) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Book two sample appointments, print the schedule and suggest a 30 minute slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			on := time.Now()
			if dateStr != "" {
				var err error
				on, err = time.ParseInLocation("2006-01-02", dateStr, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateStr, err)
				}
			}
			sched, err := opts.newScheduler()
			if err != nil {
				return err
			}
			runDemo(cmd.OutOrStdout(), sched, on)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Day to book, YYYY-MM-DD (default today)")
	return cmd
}

// runDemo prints every outcome, including rejections; none of them abort the run.
func runDemo(w io.Writer, sched *app.Scheduler, on time.Time) {
	year, month, day := on.Date()
	at := func(hour, min int) time.Time {
		return time.Date(year, month, day, hour, min, 0, 0, on.Location())
	}

	seed := []struct {
		start  time.Time
		mins   int
		client string
	}{
		{at(9, 30), 60, "Client A"},
		{at(11, 0), 45, "Client B"},
	}
	for _, s := range seed {
		appt, err := sched.Add(s.start, s.mins, s.client)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		fmt.Fprintln(w, app.ConfirmationMessage(appt))
	}

	fmt.Fprintln(w, sched.Listing())

	start, err := sched.SuggestSlot(on, demoDuration)
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, app.SuggestionMessage(app.Slot{Start: start, End: start.Add(demoDuration * time.Minute)}))
}
