package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"vertigo/internal/config"
	"vertigo/internal/logging"
)

// cli carries state shared by every command. It is filled in by the root
// command's pre-run hook.
type cli struct {
	siteFile string
	cfg      *config.Config
	flush    func()
}

func newRootCmd() *cobra.Command {
	return (&cli{}).command()
}

func (c *cli) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "vertigo",
		Short:         "Vertical content and affiliate routing engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
	}
	root.PersistentFlags().StringVar(&c.siteFile, "site", "", "site file with verticals and partners (overrides SITE_FILE)")

	root.AddCommand(
		newServeCmd(c),
		newParamsCmd(c),
		newSitemapCmd(c),
		newImportCmd(c),
		newMigrateCmd(c),
	)
	return root
}

// load loads configuration from the environment and installs the logger.
func (c *cli) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.siteFile != "" {
		cfg.SiteFile = c.siteFile
	}

	logger, flush, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	c.cfg = cfg
	c.flush = flush
	return nil
}

// execute runs cmd and flushes the logger afterwards, including when the
// command failed.
func (c *cli) execute(cmd *cobra.Command) error {
	defer c.sync()
	return cmd.Execute()
}

func (c *cli) sync() {
	if c.flush != nil {
		c.flush()
		c.flush = nil
	}
}
