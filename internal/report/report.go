// Package report renders the final account snapshot.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/ui"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// ParseFormat maps a configured output format onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatTable:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%q is an invalid output format", s)
	}
}

var header = []string{"client", "available", "held", "total", "locked"}

type row struct {
	client, available, held, total, locked string
}

func (r row) fields() []string {
	return []string{r.client, r.available, r.held, r.total, r.locked}
}

func rows(accounts []*model.Account) ([]row, error) {
	out := make([]row, 0, len(accounts))
	for _, acc := range accounts {
		total, err := acc.Total()
		if err != nil {
			return nil, fmt.Errorf("client %d: %w", acc.Client, err)
		}
		out = append(out, row{
			client:    strconv.FormatUint(uint64(acc.Client), 10),
			available: acc.Available.String(),
			held:      acc.Held.String(),
			total:     total.String(),
			locked:    strconv.FormatBool(acc.Locked),
		})
	}
	return out, nil
}

// Write renders accounts in the given format. Accounts are written in the
// order given; stores already list them by client id.
func Write(w io.Writer, f Format, accounts []*model.Account) error {
	switch f {
	case FormatTable:
		return WriteTable(w, accounts)
	default:
		return WriteCSV(w, accounts)
	}
}

// WriteCSV writes one row per account with four decimal places:
//
//	client,available,held,total,locked
//	1,1.5000,0.0000,1.5000,false
func WriteCSV(w io.Writer, accounts []*model.Account) error {
	data, err := rows(accounts)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range data {
		if err := cw.Write(r.fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders accounts as a terminal table. Locked accounts are
// highlighted.
func WriteTable(w io.Writer, accounts []*model.Account) error {
	data, err := rows(accounts)
	if err != nil {
		return err
	}

	table := pterm.TableData{{"Client", "Available", "Held", "Total", "Locked"}}
	for _, r := range data {
		table = append(table, []string{r.client, r.available, r.held, r.total, ui.Bool(r.locked == "true")})
	}

	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithRightAlignment().
		WithData(table).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
