package views

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/service"
	"github.com/hance08/payledger/internal/ui"
)

func RenderTransactionDetail(w io.Writer, detail *service.TransactionDetail) error {
	tx := detail.Transaction

	status := tx.Status.String()
	switch tx.Status {
	case model.StatusInDispute:
		status = pterm.Yellow(status)
	case model.StatusChargeback:
		status = pterm.Red(status)
	}

	fmt.Fprint(w, "\n", ui.L2Title("Transaction Info"))
	info := pterm.TableData{
		{"Field", "Value"},
		{"ID", fmt.Sprintf("%d", tx.ID)},
		{"Type", tx.Kind.String()},
		{"Client", fmt.Sprintf("%d", tx.Client)},
		{"Amount", tx.Amount.String()},
		{"Status", status},
	}
	if err := renderTable(w, info); err != nil {
		return err
	}

	acc := detail.Account
	total, err := acc.Total()
	if err != nil {
		return err
	}

	fmt.Fprint(w, "\n", ui.L2Title("Account"))
	account := pterm.TableData{
		{"Available", "Held", "Total", "Locked"},
		{acc.Available.String(), acc.Held.String(), total.String(), ui.Bool(acc.Locked)},
	}
	return renderTable(w, account)
}

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
