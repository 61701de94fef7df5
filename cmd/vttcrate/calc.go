/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mikeb26/vttc-ratings/internal"
	"github.com/mikeb26/vttc-ratings/ladder"
	"github.com/mikeb26/vttc-ratings/logstore"
	"github.com/mikeb26/vttc-ratings/source"
)

type calcOptions struct {
	results   string
	players   string
	player    string
	rosterOut string
	logOut    string
	timestamp string
	save      bool
	table     bool
	quiet     bool
}

func calcCmd(root *rootOptions) *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc --results <file|url|-> --players <file|url|->",
		Short: "Recompute ratings from results and a player list",
		Long: `Recompute ratings by replaying each result, in order, against the player
list. Results lines look like "Alice(3),3,Bob(3),1" and player lines like
"1,Alice(3),1500,memo". Either input may be a file, an http(s) URL or "-" for
stdin.

Examples:
  vttcrate calc --results results.txt --players players.txt
  vttcrate calc --results - --players players.txt --player Alice < results.txt
  vttcrate calc --results results.txt --players players.txt --save --table
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd.Context(), cmd, root, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.results, "results", "", "match results input")
	cmd.Flags().StringVar(&opts.players, "players", "", "player list input")
	cmd.Flags().StringVar(&opts.player, "player", ladder.AllPlayers,
		"only show log lines involving this player")
	cmd.Flags().StringVar(&opts.rosterOut, "roster-out", "",
		"also write the updated player list to this file")
	cmd.Flags().StringVar(&opts.logOut, "log-out", "",
		"also write the calculation log to this file")
	cmd.Flags().StringVar(&opts.timestamp, "timestamp", "",
		"time to stamp the log with (default now)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the log to the log store")
	cmd.Flags().BoolVar(&opts.table, "table", false,
		"show ratings as a table instead of the roster")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"print the roster only")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("players")

	return cmd
}

func runCalc(ctx context.Context, cmd *cobra.Command, root *rootOptions,
	opts *calcOptions) error {

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := root.config()
	if err != nil {
		return err
	}
	now, err := internal.ParseDateOrZero(opts.timestamp)
	if err != nil {
		return fmt.Errorf("invalid --timestamp %q: %w", opts.timestamp, err)
	}
	if now.IsZero() {
		now = time.Now()
	}

	client := internal.NewCachedHttpClient(ctx, cfg.Source.CacheBucket,
		cfg.LogStore.Region, cfg.Source.MaxAge)
	fetcher := source.New(client, cfg.Source.Selector)
	fetcher.Stdin = cmd.InOrStdin()
	resultsText, playersText, err := fetcher.ReadBoth(ctx, opts.results,
		opts.players)
	if err != nil {
		return err
	}

	calc, err := ladder.Calculate(resultsText, playersText, ladder.Options{
		Now:       now,
		Separator: cfg.Ladder.Separator,
	})
	if err != nil {
		var verr *ladder.ValidationError
		if errors.As(err, &verr) {
			printValidationError(errOut, verr)
			return fmt.Errorf("%d line error(s); no ratings were changed",
				verr.Count())
		}
		return err
	}

	for _, u := range calc.Unresolved {
		fmt.Fprintln(errOut, color.YellowString("warning: %v", u))
	}

	view := calc.Log.Filter(opts.player)
	if opts.table {
		fmt.Fprintln(out, ratingsTable(calc.Players))
	} else {
		fmt.Fprintln(out, calc.Roster())
	}
	if !opts.quiet {
		fmt.Fprintln(out)
		fmt.Fprintln(out, view.Render(terminalHighlighter))
	}

	if opts.rosterOut != "" {
		if err := writeFile(opts.rosterOut, calc.Roster()+"\n"); err != nil {
			return err
		}
	}
	if opts.logOut != "" {
		if err := writeFile(opts.logOut, view.String()+"\n"); err != nil {
			return err
		}
	}

	if opts.save {
		store, err := root.openStore(ctx, cfg)
		if err != nil {
			return err
		}
		rec := logstore.NewRecord(calc, opts.player, view.String(), now)
		id, err := store.Save(ctx, rec)
		if err != nil {
			return err
		}
		fmt.Fprintln(errOut, color.GreenString("Log saved successfully (id %v)", id))
	}

	return nil
}

func terminalHighlighter(name string) string {
	return color.New(color.FgYellow, color.Bold).Sprint(name)
}

func printValidationError(w io.Writer, verr *ladder.ValidationError) {
	red := color.New(color.FgRed)
	writeErrs := func(in ladder.Input, errs []ladder.ParseError) {
		for _, pe := range errs {
			red.Fprintf(w, "%v %v\n", in, pe.Error())
		}
	}
	writeErrs(ladder.InputResults, verr.ResultErrors)
	writeErrs(ladder.InputPlayers, verr.PlayerErrors)
}

func ratingsTable(players []ladder.RatedPlayer) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"ID", "Name", "Bracket", "Old", "New", "Change"})
	for _, p := range players {
		bracket := fmt.Sprintf("%d", p.Bracket)
		if p.BracketChanged() {
			bracket = fmt.Sprintf("%d → %d", p.OldBracket, p.Bracket)
		}
		change := ""
		if p.RatingChanged() {
			change = fmt.Sprintf("%+d", p.Rating-p.OldRating)
		}
		tbl.AppendRow(table.Row{p.ID, p.Name, bracket, p.OldRating, p.Rating,
			change})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d players", len(players))})

	return tbl.Render()
}

func writeFile(path string, data string) error {
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	return nil
}
