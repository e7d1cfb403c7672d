package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the attendancectl command tree. now supplies the
// reference instant when --now is not given.
func NewRootCmd(now func() time.Time) *cobra.Command {
	opts := &options{clock: now}

	root := &cobra.Command{
		Use:           "attendancectl",
		Short:         "Reconcile an exported attendance event file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "JSON event export to read (- for stdin)")
	flags.StringVar(&opts.tz, "tz", "UTC", "IANA timezone that defines a local day")
	flags.StringVar(&opts.now, "now", "", "reference instant in RFC3339, defaults to the current time")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(
		newHistoryCmd(opts),
		newSummaryCmd(opts),
		newTodayCmd(opts),
		newDurationCmd(opts),
	)

	return root
}

func Execute() error {
	root := NewRootCmd(time.Now)
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	return root.Execute()
}
