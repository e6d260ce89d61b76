package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
	"github.com/hance08/payledger/internal/constants"
	"github.com/hance08/payledger/internal/ui/prompts"
)

type resetFlags struct {
	Yes   bool
	Plain bool
}

type confirmFunc func(message, description string, def bool) (bool, error)

// confirmPrompt picks the full-screen form, or a line prompt with --plain.
func confirmPrompt(plain bool) confirmFunc {
	if plain {
		return func(message, description string, def bool) (bool, error) {
			return prompts.PromptConfirmLine(message, description, def)
		}
	}
	return prompts.PromptConfirm
}

type resetRunner struct {
	app     *app.App
	flags   *resetFlags
	confirm confirmFunc
}

func NewResetCmd(provide app.Provider) *cobra.Command {
	flags := &resetFlags{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all accounts and transactions from the store",
		Long: `Delete every account and transaction record from the configured store.
This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &resetRunner{
				app:     provide(),
				flags:   flags,
				confirm: confirmPrompt(flags.Plain),
			}
			return runner.Run(cmd)
		},
	}
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&flags.Plain, "plain", false, "ask with a single-line prompt instead of the interactive form")

	return cmd
}

func (r *resetRunner) Run(cmd *cobra.Command) error {
	if r.app.Config.Database.Driver == constants.DriverMemory {
		pterm.Info.Println("The memory store holds nothing between runs; nothing to reset")
		return nil
	}

	if !r.flags.Yes {
		ok, err := r.confirm(
			"Delete all ledger data?",
			"Every account and transaction in the "+r.app.Config.Database.Driver+" store will be removed.",
			false,
		)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Warning.Println("Reset cancelled")
			return nil
		}
	}

	if err := r.app.Service.Transaction.ResetLedger(cmd.Context()); err != nil {
		return err
	}

	pterm.Success.Println("Ledger reset")
	return nil
}
