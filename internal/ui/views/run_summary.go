package views

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/hance08/payledger/internal/ledger"
)

// RenderRunSummary reports what a processing run did. It is written to
// stderr by the commands so that the account report on stdout stays clean.
func RenderRunSummary(w io.Writer, s ledger.Summary) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprintln("Run Summary"))

	data := pterm.TableData{
		{"Outcome", "Events"},
		{"applied", fmt.Sprintf("%d", s.Applied)},
	}
	for _, reason := range s.Reasons() {
		data = append(data, []string{pterm.Yellow(reason.String()), fmt.Sprintf("%d", s.Rejected[reason])})
	}
	if err := renderTable(w, data); err != nil {
		return err
	}

	fmt.Fprint(w, pterm.Success.Sprintfln("%d events in %s, %d rejected",
		s.Events, s.Elapsed.Round(time.Millisecond), s.RejectedTotal()))
	return nil
}
