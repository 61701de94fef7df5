/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/mikeb26/vttc-ratings/internal"
	"github.com/mikeb26/vttc-ratings/source"
)

func fetchCmd(root *rootOptions) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "fetch <url|file>...",
		Short: "Print the input text vttcrate would read from each reference",
		Long: `Print the text calc would read from each reference. For web pages this
is the text of the first element matching the selector. Fetching through the
configured cache bucket also seeds it for later calc runs.

Examples:
  vttcrate fetch https://example.org/ladder/players.html
  vttcrate fetch --selector "#results" https://example.org/ladder/monday.html
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := root.config()
			if err != nil {
				return err
			}
			if selector == "" {
				selector = cfg.Source.Selector
			}
			client := internal.NewCachedHttpClient(ctx, cfg.Source.CacheBucket,
				cfg.LogStore.Region, cfg.Source.MaxAge)
			fetcher := source.New(client, selector)
			fetcher.Stdin = cmd.InOrStdin()

			failed := 0
			for _, ref := range args {
				text, err := fetcher.Read(ctx, ref)
				if err != nil {
					// best effort; keep going with the remaining references
					log.Printf("vttcrate.fetch: %v", err)
					failed++
					continue
				}
				fmt.Fprint(out, text)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d references could not be read",
					failed, len(args))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&selector, "selector", "",
		"CSS selector for web pages (default from config)")

	return cmd
}
