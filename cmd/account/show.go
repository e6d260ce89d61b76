package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/report"
	"github.com/hance08/payledger/internal/validation"
)

type ShowCommandRunner struct {
	app *app.App
}

func NewShowCmd(provide app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "show <client-id>",
		Short: "Show one client's balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				app: provide(),
			}
			return runner.Run(cmd, args)
		},
	}
}

func (r *ShowCommandRunner) Run(cmd *cobra.Command, args []string) error {
	id, err := validation.ParseClientID(args[0])
	if err != nil {
		return err
	}

	acc, err := r.app.Service.Account.GetAccount(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	return report.WriteTable(cmd.OutOrStdout(), []*model.Account{acc})
}
