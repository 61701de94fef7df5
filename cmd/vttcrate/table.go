/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mikeb26/vttc-ratings/ladder"
)

func tableCmd() *cobra.Command {
	var rating int
	var delta int

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the rating adjustment chart",
		Long: `Show the rating adjustment chart and bracket floors.

Examples:
  vttcrate table
  vttcrate table --rating 1615
  vttcrate table --delta -120
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("rating") {
				fmt.Fprintf(out, "Rating %d is bracket %d\n", rating,
					ladder.BracketForRating(rating))
				return nil
			}
			if cmd.Flags().Changed("delta") {
				idx, adj := ladder.AdjustmentFor(delta)
				fmt.Fprintf(out, "Rating delta %d: index %d, winner %+d, loser %d\n",
					delta, idx, adj.Gain, adj.Loss)
				return nil
			}

			fmt.Fprintln(out, adjustmentTable())
			fmt.Fprintln(out)
			fmt.Fprintln(out, bracketTable())
			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "show the bracket for this rating")
	cmd.Flags().IntVar(&delta, "delta", 0,
		"show the adjustment for this winner minus loser rating gap")

	return cmd
}

func adjustmentTable() string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("Rating adjustments")
	tbl.AppendHeader(table.Row{"Index", "Winner - Loser", "Winner", "Loser"})
	for _, row := range ladder.Table() {
		gap := "unused"
		if row.HasFloor {
			gap = fmt.Sprintf("≥ %d", row.Threshold)
		}
		tbl.AppendRow(table.Row{row.Index, gap,
			fmt.Sprintf("%+d", row.Adjustment.Gain), row.Adjustment.Loss})
	}

	return tbl.Render()
}

func bracketTable() string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("Brackets")
	tbl.AppendHeader(table.Row{"Bracket", "Minimum rating"})
	for b := 1; b <= ladder.LowestBracket; b++ {
		floor, ok := ladder.BracketFloor(b)
		minimum := "-"
		if ok {
			minimum = fmt.Sprintf("%d", floor)
		}
		tbl.AppendRow(table.Row{b, minimum})
	}

	return tbl.Render()
}
