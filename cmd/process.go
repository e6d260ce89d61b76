package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
	"github.com/hance08/payledger/internal/feed"
	"github.com/hance08/payledger/internal/ledger"
	"github.com/hance08/payledger/internal/report"
	"github.com/hance08/payledger/internal/ui/views"
)

type outputFlags struct {
	Format  string
	Summary bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "format", "f", "", "output format (csv, table); defaults to output.format")
	cmd.Flags().BoolVar(&f.Summary, "summary", false, "print a run summary to stderr")
}

type processRunner struct {
	app   *app.App
	flags *outputFlags
	out   io.Writer
	errw  io.Writer
}

func NewProcessCmd(provide app.Provider) *cobra.Command {
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "process <events.csv>",
		Short: "Apply a CSV file of events and print the final accounts",
		Long: `Apply every event of a CSV file (header: type,client,tx,amount) in order
and print one row per client account to stdout. Use "-" to read stdin.

A malformed row aborts the run before it is applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &processRunner{
				app:   provide(),
				flags: flags,
				out:   cmd.OutOrStdout(),
				errw:  cmd.ErrOrStderr(),
			}
			return runner.Run(cmd, args[0])
		},
	}
	flags.register(cmd)

	return cmd
}

func (r *processRunner) Run(cmd *cobra.Command, path string) error {
	in, closeIn, err := openInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeIn()

	return runFeed(cmd, r.app, feed.NewCSVSource(in), r.flags, r.out, r.errw)
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// runFeed drives src to completion and writes the account snapshot. Nothing
// is printed when the run fails.
func runFeed(cmd *cobra.Command, a *app.App, src ledger.Source, flags *outputFlags, out, errw io.Writer) error {
	format := flags.Format
	if format == "" {
		format = a.Config.Output.Format
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	summary, err := a.Processor.Run(cmd.Context(), src)
	if err != nil {
		return err
	}

	accounts, err := a.Service.Account.GetAllAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}
	if err := report.Write(out, f, accounts); err != nil {
		return err
	}

	if flags.Summary {
		return views.RenderRunSummary(errw, summary)
	}
	return nil
}
