package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
)

func NewAccountCmd(provide app.Provider) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect client accounts held in the store",
		Long:  `Inspect client accounts held in the store: list all of them or show one client.`,
	}

	accountCmd.AddCommand(NewListCmd(provide))
	accountCmd.AddCommand(NewShowCmd(provide))

	return accountCmd
}
