/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// vttcrate recomputes ladder ratings from a night's results and manages
// saved calculation logs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mikeb26/vttc-ratings/internal"
	"github.com/mikeb26/vttc-ratings/logstore"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	cfgFile string
	noColor bool

	// store overrides the configured log store; used by tests
	store logstore.Store
}

func main() {
	err := newRootCmd(&rootOptions{}).ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vttcrate",
		Short: "Ladder rating calculator",
		Long: `vttcrate applies a night's match results to the ladder player list and
prints the updated roster along with a log of every rating change.

Commands:
  calc      Recompute ratings from results and a player list
  logs      List saved calculation logs
  table     Show the rating adjustment chart
  fetch     Print the input text read from a file or web page`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config",
		internal.DefaultConfigFile, "config file")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false,
		"disable colored output")

	rootCmd.AddCommand(calcCmd(opts))
	rootCmd.AddCommand(logsCmd(opts))
	rootCmd.AddCommand(fetchCmd(opts))
	rootCmd.AddCommand(tableCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func (opts *rootOptions) config() (*internal.Config, error) {
	return internal.LoadConfig(opts.cfgFile)
}

func (opts *rootOptions) openStore(ctx context.Context,
	cfg *internal.Config) (logstore.Store, error) {

	if opts.store != nil {
		return opts.store, nil
	}
	return logstore.Open(ctx, cfg.LogStore)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vttcrate %s\n", internal.Version)
		},
	}
}
