// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vertigo/internal/models"
	"vertigo/internal/sitemap"
	"vertigo/internal/staticparams"
)

// errAllVerticalsFailed is returned by the build commands when no vertical
// could be enumerated. Partial failures only log.
var errAllVerticalsFailed = errors.New("every vertical failed to enumerate")

func newParamsCmd(c *cli) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the static page params as JSON",
		Long: `Print every (vertical, type, slug) triple that has a content page.
With --type only the {vertical, slug} pairs of that content type are printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var t models.ContentType
			if typ != "" {
				var err error
				if t, err = models.ParseContentType(typ); err != nil {
					return err
				}
			}

			a, err := newApp(cmd.Context(), c.cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			res := staticparams.Enumerate(cmd.Context(), a.verticals, a.content)
			if a.verticals.Len() > 0 && len(res.Failures) == a.verticals.Len() {
				return errAllVerticalsFailed
			}

			var out any = res.Params
			if t != "" {
				out = res.ForType(t)
			} else if res.Params == nil {
				out = []staticparams.Param{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "content type to print (destinations, blog, guides)")
	return cmd
}

func newSitemapCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), c.cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			b := sitemap.NewBuilder(c.cfg.SiteURL, a.verticals, a.content)
			res := b.Build(cmd.Context())
			if a.verticals.Len() > 0 && len(res.Failures) == a.verticals.Len() {
				return errAllVerticalsFailed
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create sitemap: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := sitemap.WriteXML(w, res.URLs); err != nil {
				return fmt.Errorf("write sitemap: %w", err)
			}
			if out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d urls to %s\n", len(res.URLs), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
