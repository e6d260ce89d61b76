package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hance08/payledger/cmd/account"
	"github.com/hance08/payledger/internal/app"
)

// NewAccListCmd is a root-level shortcut for "account list".
func NewAccListCmd(provide app.Provider) *cobra.Command {
	cmd := account.NewListCmd(provide)
	cmd.Use = "accounts"
	cmd.Aliases = []string{"ls"}
	return cmd
}
