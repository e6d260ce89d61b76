package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/config"
	"github.com/hance08/payledger/internal/constants"
	"github.com/hance08/payledger/internal/ui/views"
)

type infoRunner struct {
	cfg *config.Config
}

func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "info",
		Short:       "Display application information",
		Long:        `Display current configuration, database location, and system details.`,
		Annotations: map[string]string{skipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				cfg: cfg,
			}
			return runner.Run(cmd)
		},
	}
}

func (r *infoRunner) Run(cmd *cobra.Command) error {
	configPath := r.cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	item := views.SystemInfoItem{
		ConfigPath:   configPath,
		Driver:       r.cfg.Database.Driver,
		OutputFormat: r.cfg.Output.Format,
		KafkaTopic:   r.cfg.Kafka.Topic,
		AppDataDir:   "Unknown",
	}
	if dir, err := config.AppDataDir(); err == nil {
		item.AppDataDir = dir
	}

	switch r.cfg.Database.Driver {
	case constants.DriverSQLite:
		path, err := r.cfg.Database.DBPath()
		if err != nil {
			return err
		}
		item.DBPath = path
		if _, err := os.Stat(path); err == nil {
			item.DBExists = true
		}
	case constants.DriverPostgres:
		item.DBPath = "(dsn configured)"
	default:
		item.DBPath = "(in memory)"
	}

	return views.RenderSystemInfo(cmd.OutOrStdout(), item)
}
