package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vertigo/internal/config"
	"vertigo/internal/database"
	"vertigo/internal/filesource"
	"vertigo/internal/store"
	"vertigo/internal/vertical"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, d, err := openDB(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(db, d)
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a content directory into the database",
		Long: `Read every content file the site's verticals publish from a content
directory and upsert it into the database selected by CONTENT_SOURCE.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if from == "" {
				from = c.cfg.ContentDir
			}
			site, err := config.LoadSite(c.cfg.SiteFile)
			if err != nil {
				return err
			}
			reg, err := vertical.New(site.Verticals)
			if err != nil {
				return fmt.Errorf("vertical registry: %w", err)
			}

			db, d, err := openDB(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Migrate(db, d); err != nil {
				return err
			}

			n, err := store.NewContentStore(db, d).Import(cmd.Context(), filesource.New(from), reg.All())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items from %s\n", n, from)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "content directory (defaults to CONTENT_DIR)")
	return cmd
}
