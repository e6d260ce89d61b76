package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hance08/payledger/cmd/account"
	"github.com/hance08/payledger/cmd/transaction"
	"github.com/hance08/payledger/internal/app"
	"github.com/hance08/payledger/internal/config"
	"github.com/hance08/payledger/internal/constants"
	"github.com/hance08/payledger/internal/errhandler"
)

// skipApp marks commands that only need the configuration.
const skipApp = "skip-app"

var (
	cfgFile     string
	cfg         *config.Config
	application *app.App
	cleanup     = func() {}
)

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	cleanup()
	stop()

	if err != nil {
		errhandler.HandleError(err)
	}
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "payledger replays payment events into client account balances",
		Long: `payledger reads deposits, withdrawals, disputes, resolves and chargebacks,
applies them to per-client accounts exactly once and reports the final balances.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			if cmd.Annotations[skipApp] != "" {
				return nil
			}

			a, done, err := app.NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			application, cleanup = a, done
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().String("driver", "", "database driver (memory, sqlite, postgres)")
	rootCmd.PersistentFlags().String("db", "", "sqlite database path")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("database.driver", rootCmd.PersistentFlags().Lookup("driver"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	provide := func() *app.App { return application }

	rootCmd.AddCommand(account.NewAccountCmd(provide))
	rootCmd.AddCommand(transaction.NewTransactionCmd(provide))

	rootCmd.AddCommand(NewProcessCmd(provide))
	rootCmd.AddCommand(NewConsumeCmd(provide))
	rootCmd.AddCommand(NewAccListCmd(provide))
	rootCmd.AddCommand(NewResetCmd(provide))
	rootCmd.AddCommand(NewInfoCmd())

	return rootCmd
}

func initConfig() error {
	appDir, err := config.AppDataDir()
	if err != nil {
		return err
	}

	if cfgFile == "" {
		config.SetDefaults(viper.GetViper())
		if err := config.WriteDefault(viper.GetViper(), appDir); err != nil {
			return err
		}
	}

	loaded, err := config.Load(viper.GetViper(), cfgFile, appDir)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}
