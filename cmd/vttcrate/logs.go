/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mikeb26/vttc-ratings/internal"
	"github.com/mikeb26/vttc-ratings/logstore"
)

const listTimeLayout = "2006-01-02 15:04"

func logsCmd(root *rootOptions) *cobra.Command {
	var since string
	var limit int
	var show string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List saved calculation logs",
		Long: `List saved calculation logs, most recent first.

Examples:
  vttcrate logs
  vttcrate logs --since 14d --limit 5
  vttcrate logs --since 2025-06-01
  vttcrate logs --show 6f1c1a5e-...
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := root.config()
			if err != nil {
				return err
			}
			sinceTime, err := internal.ParseSince(since, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --since %q: %w", since, err)
			}
			store, err := root.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			recs, err := store.List(ctx)
			if err != nil {
				return err
			}

			if show != "" {
				for _, rec := range recs {
					if rec.ID == show {
						fmt.Fprintln(out, rec.LogData)
						return nil
					}
				}
				return fmt.Errorf("%w: %v", logstore.ErrNotFound, show)
			}

			recs = logstore.Since(recs, sinceTime)
			if limit > 0 && len(recs) > limit {
				recs = recs[:limit]
			}
			if len(recs) == 0 {
				fmt.Fprintln(out, "No saved logs found.")
				return nil
			}
			fmt.Fprintln(out, logsTable(recs))

			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "",
		"only list logs saved on or after this date")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of logs to list")
	cmd.Flags().StringVar(&show, "show", "", "print the log with this id")

	return cmd
}

func logsTable(recs []logstore.Record) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Saved", "Night", "Players", "Matches",
		"Player", "ID"})
	for _, rec := range recs {
		night := ""
		if !rec.Timestamp.IsZero() {
			night = rec.Timestamp.Format(listTimeLayout)
		}
		tbl.AppendRow(table.Row{rec.CreatedAt.Local().Format(listTimeLayout),
			night, rec.PlayerCount, rec.MatchCount, rec.SelectedPlayer, rec.ID})
	}

	return tbl.Render()
}
