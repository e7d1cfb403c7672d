package cli

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List events grouped by local day with each day's worked time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts, rf)
		},
	}
	rf.register(cmd)
	return cmd
}

func runHistory(cmd *cobra.Command, opts *options, rf rangeFlags) error {
	if err := opts.validateOutput(); err != nil {
		return err
	}
	rec, err := opts.reconciler()
	if err != nil {
		return err
	}
	q, err := rf.query(rec.Location())
	if err != nil {
		return err
	}
	events, err := opts.loadEvents(cmd)
	if err != nil {
		return err
	}

	days := rec.History(events, q)
	w := cmd.OutOrStdout()

	if opts.output == "json" {
		out := make([]attendance.DayHistoryResponse, 0, len(days))
		for _, d := range days {
			out = append(out, attendance.DayHistoryResponse{
				Date:        d.Day.String(),
				Label:       d.Day.Label(),
				Duration:    d.Tally.Label(),
				WorkedHours: d.Tally.FractionalHours(),
				Events:      attendance.NewEventResponses(d.Events),
			})
		}
		return opts.writeJSON(w, out)
	}

	if len(days) == 0 {
		_, _ = fmt.Fprintln(w, "No attendance in range")
		return nil
	}
	for _, d := range days {
		_, _ = fmt.Fprintf(w, "%s  %s\n", d.Day.Label(), d.Tally.Label())
		for _, e := range d.Events {
			_, _ = fmt.Fprintf(w, "  %s  %s\n", e.Timestamp.In(rec.Location()).Format("15:04"), eventDescription(e))
		}
	}
	return nil
}

func eventDescription(e attendance.Event) string {
	if e.Action != attendance.ActionRegularization {
		return string(e.Action)
	}
	status := "Pending"
	if e.ApprovalStatus != nil {
		status = string(*e.ApprovalStatus)
	}
	return fmt.Sprintf("regularization (%s)", status)
}

func newSummaryCmd(opts *options) *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate worked days and hours over a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, opts, rf)
		},
	}
	rf.register(cmd)
	return cmd
}

func runSummary(cmd *cobra.Command, opts *options, rf rangeFlags) error {
	if err := opts.validateOutput(); err != nil {
		return err
	}
	rec, err := opts.reconciler()
	if err != nil {
		return err
	}
	q, err := rf.query(rec.Location())
	if err != nil {
		return err
	}
	events, err := opts.loadEvents(cmd)
	if err != nil {
		return err
	}

	s := rec.Summary(events, q)
	w := cmd.OutOrStdout()

	if opts.output == "json" {
		return opts.writeJSON(w, attendance.SummaryResponse{
			Range:            string(q.Range),
			DaysCount:        s.DaysCount,
			RegularizedCount: s.RegularizedCount,
			VerifiedCount:    s.VerifiedCount,
			TotalHours:       s.TotalHours,
			TotalHoursLabel:  s.TotalHoursLabel(),
			DroppedSessions:  s.DroppedSessions,
			NegativeSessions: s.NegativeSessions,
		})
	}

	_, _ = fmt.Fprintf(w, "Range:        %s\n", q.Range)
	_, _ = fmt.Fprintf(w, "Days:         %d\n", s.DaysCount)
	_, _ = fmt.Fprintf(w, "Regularized:  %d\n", s.RegularizedCount)
	_, _ = fmt.Fprintf(w, "Verified:     %d\n", s.VerifiedCount)
	_, _ = fmt.Fprintf(w, "Total hours:  %s\n", s.TotalHoursLabel())
	if s.DroppedSessions > 0 || s.NegativeSessions > 0 {
		_, _ = fmt.Fprintf(w, "Dropped:      %d\n", s.DroppedSessions)
		_, _ = fmt.Fprintf(w, "Negative:     %d\n", s.NegativeSessions)
	}
	return nil
}

func newTodayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's live events and running worked time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, opts)
		},
	}
}

func runToday(cmd *cobra.Command, opts *options) error {
	if err := opts.validateOutput(); err != nil {
		return err
	}
	rec, err := opts.reconciler()
	if err != nil {
		return err
	}
	events, err := opts.loadEvents(cmd)
	if err != nil {
		return err
	}

	today, tally := rec.Today(events)
	w := cmd.OutOrStdout()
	date := rec.Now().Format("2006-01-02")

	if opts.output == "json" {
		return opts.writeJSON(w, attendance.TodayResponse{
			Date:     date,
			Duration: tally.Label(),
			Events:   attendance.NewEventResponses(today),
		})
	}

	_, _ = fmt.Fprintf(w, "%s  %s\n", date, tally.Label())
	for _, e := range today {
		_, _ = fmt.Fprintf(w, "  %s  %s\n", e.Timestamp.In(rec.Location()).Format("15:04"), e.Action)
	}
	return nil
}

func newDurationCmd(opts *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Print the worked time of one local day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuration(cmd, opts, date)
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to reconcile (YYYY-MM-DD), defaults to today")
	return cmd
}

func runDuration(cmd *cobra.Command, opts *options, date string) error {
	if err := opts.validateOutput(); err != nil {
		return err
	}
	rec, err := opts.reconciler()
	if err != nil {
		return err
	}

	var day time.Time
	if date == "" {
		day = rec.Now()
		date = day.Format("2006-01-02")
	} else {
		var ok bool
		if day, ok = validator.IsValidDate(date); !ok {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
		}
	}

	events, err := opts.loadEvents(cmd)
	if err != nil {
		return err
	}

	label := rec.DayDuration(events, day).Label()
	w := cmd.OutOrStdout()
	if opts.output == "json" {
		return opts.writeJSON(w, attendance.DurationResponse{Date: date, Duration: label})
	}
	_, _ = fmt.Fprintln(w, label)
	return nil
}
