package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

func L1Title(format string, a ...interface{}) string {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	return style.Sprintln(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

func L2Title(format string, a ...interface{}) string {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	return style.Sprintln(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

// Bool colours a flag red when set.
func Bool(b bool) string {
	if b {
		return pterm.Red("true")
	}
	return pterm.Green("false")
}
