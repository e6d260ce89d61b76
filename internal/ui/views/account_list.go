package views

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/report"
	"github.com/hance08/payledger/internal/service"
)

func RenderAccountList(w io.Writer, accounts []*model.Account, totals service.Totals) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprintln("Accounts"))

	if len(accounts) == 0 {
		fmt.Fprint(w, pterm.Info.Sprintln("No accounts yet"))
		return nil
	}
	if err := report.WriteTable(w, accounts); err != nil {
		return err
	}

	fmt.Fprint(w, pterm.Info.Sprintfln("Total: %d accounts (%d locked), available %s, held %s, total %s",
		totals.Accounts, totals.Locked, totals.Available, totals.Held, totals.Total))
	return nil
}
