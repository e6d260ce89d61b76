package views

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/hance08/payledger/internal/constants"
	"github.com/hance08/payledger/internal/ui"
)

type SystemInfoItem struct {
	ConfigPath   string
	Driver       string
	DBPath       string
	DBExists     bool // only meaningful for the sqlite driver
	OutputFormat string
	KafkaTopic   string
	AppDataDir   string
}

func RenderSystemInfo(w io.Writer, data SystemInfoItem) error {
	dbPath := data.DBPath
	if data.Driver == constants.DriverSQLite {
		if data.DBExists {
			dbPath += " " + pterm.Green("(found)")
		} else {
			dbPath += " " + pterm.Red("(not found, will be created)")
		}
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Driver", data.Driver},
		{"Database", dbPath},
		{"Output Format", data.OutputFormat},
		{"Kafka Topic", data.KafkaTopic},
		{"AppData Directory", data.AppDataDir},
	}

	out, err := pterm.DefaultTable.WithData(tableData).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, ui.L1Title("%s", constants.AppName)+out+"\n")
	return err
}
