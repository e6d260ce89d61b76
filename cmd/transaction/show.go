package transaction

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
	"github.com/hance08/payledger/internal/ui/views"
	"github.com/hance08/payledger/internal/validation"
)

type ShowCommandRunner struct {
	app *app.App
}

func NewShowCmd(provide app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
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
	id, err := validation.ParseTxID(args[0])
	if err != nil {
		return err
	}

	detail, err := r.app.Service.Transaction.GetTransactionByID(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	return views.RenderTransactionDetail(cmd.OutOrStdout(), detail)
}
