package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	service "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	"github.com/spf13/cobra"
)

type options struct {
	file   string
	tz     string
	now    string
	output string
	clock  func() time.Time
}

// rangeFlags are shared by history and summary.
type rangeFlags struct {
	name  string
	start string
	end   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "range", "r", string(attendance.RangeAllTime), "period to cover")
	cmd.Flags().StringVar(&f.start, "start", "", "custom range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "custom range end date (YYYY-MM-DD)")
}

func (f *rangeFlags) query(loc *time.Location) (service.Query, error) {
	name, err := attendance.ParseRangeName(f.name)
	if err != nil {
		return service.Query{}, err
	}

	q := service.Query{Range: name}
	if name != attendance.RangeCustom {
		return q, nil
	}

	var start, end time.Time
	if f.start != "" {
		var ok bool
		if start, ok = validator.IsValidDate(f.start); !ok {
			return service.Query{}, fmt.Errorf("%w: --start must be YYYY-MM-DD", attendance.ErrInvalidRange)
		}
	}
	if f.end != "" {
		var ok bool
		if end, ok = validator.IsValidDate(f.end); !ok {
			return service.Query{}, fmt.Errorf("%w: --end must be YYYY-MM-DD", attendance.ErrInvalidRange)
		}
	}
	custom := service.NewCustomRange(start, end, loc)
	q.Custom = &custom
	return q, nil
}

func (o *options) reconciler() (*service.Reconciler, error) {
	loc, err := time.LoadLocation(o.tz)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz: %w", err)
	}

	clock := o.clock
	if o.now != "" {
		fixed, ok := validator.IsValidDateTime(o.now)
		if !ok {
			return nil, fmt.Errorf("invalid --now: expected RFC3339, got %q", o.now)
		}
		clock = func() time.Time { return fixed }
	}

	return service.NewReconciler(loc, clock, nil), nil
}

// loadEvents reads the export. Records with an unknown action are skipped.
func (o *options) loadEvents(cmd *cobra.Command) ([]attendance.Event, error) {
	var r io.Reader
	if o.file == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(o.file)
		if err != nil {
			return nil, fmt.Errorf("open event file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var raw []attendance.EventResponse
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode event file: %w", err)
	}

	events := make([]attendance.Event, 0, len(raw))
	for i, rec := range raw {
		e, err := rec.ToEvent()
		if err != nil {
			slog.Warn("Skipping event record", "index", i, "id", rec.ID, "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (o *options) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *options) validateOutput() error {
	if o.output != "text" && o.output != "json" {
		return fmt.Errorf("invalid --output %q: must be text or json", o.output)
	}
	return nil
}
