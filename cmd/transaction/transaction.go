package transaction

import (
	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
)

func NewTransactionCmd(provide app.Provider) *cobra.Command {
	txCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Inspect stored deposit and withdrawal records",
	}

	txCmd.AddCommand(NewShowCmd(provide))

	return txCmd
}
