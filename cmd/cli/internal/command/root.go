// Package command implements the paycycle admin CLI.
package command

import (
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/paycycle/internal/app"
	"github.com/MrJamesThe3rd/paycycle/internal/config"
)

type cli struct {
	backend     string
	file        string
	includeOpen bool

	app *app.App
}

func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "paycycle",
		Short: "Inspect and maintain per-user transactions and pay-period reports",
		Long: `paycycle works directly on the configured storage backend.

Commands that change data (add, import, clear) write the store back before
exiting. Configuration is read from the environment and an optional .env file;
--backend and --file take precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.close()
		},
	}

	root.PersistentFlags().StringVar(&c.backend, "backend", "", "storage backend: file or postgres (default from STORAGE_BACKEND)")
	root.PersistentFlags().StringVar(&c.file, "file", "", "data file for the file backend (default from STORAGE_FILE)")

	root.AddCommand(
		c.listCmd(),
		c.sumCmd(),
		c.reportCmd(),
		c.addCmd(),
		c.importCmd(),
		c.exportCmd(),
		c.clearCmd(),
	)

	return root
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.backend != "" {
		cfg.Storage.Backend = c.backend
	}

	if c.file != "" {
		cfg.Storage.File = c.file
	}

	if c.includeOpen {
		cfg.Report.IncludeOpenPeriod = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	c.app, err = app.New(cmd.Context(), cfg)

	return err
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}

	return c.app.Close()
}
