package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "warsim",
		Short: "Turn-based war and unit attrition simulator",
		Long: `Runs the war simulation headless from a scenario file, serves the
query API for the map renderer, and checks the border atlas.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: search configs/conf.yml upward)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newServeCmd(opts),
		newGeoCmd(opts),
	)
	return rootCmd
}
