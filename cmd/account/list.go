package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/service"
	"github.com/hance08/payledger/internal/ui/views"
)

type listFlags struct {
	LockedOnly bool
}

type ListCommandRunner struct {
	app   *app.App
	flags *listFlags
}

func NewListCmd(provide app.Provider) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts with their balances",
		Long: `List every client account in the store, in client order, with its available,
held and total balance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				app:   provide(),
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	cmd.Flags().BoolVar(&flags.LockedOnly, "locked", false, "Only show locked accounts")

	return cmd
}

func (r *ListCommandRunner) Run(cmd *cobra.Command) error {
	accounts, err := r.app.Service.Account.GetAllAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	if r.flags.LockedOnly {
		accounts = filterLocked(accounts)
	}

	totals, err := service.Summarize(accounts)
	if err != nil {
		return err
	}
	return views.RenderAccountList(cmd.OutOrStdout(), accounts, totals)
}

func filterLocked(accounts []*model.Account) []*model.Account {
	var out []*model.Account
	for _, acc := range accounts {
		if acc.Locked {
			out = append(out, acc)
		}
	}
	return out
}
