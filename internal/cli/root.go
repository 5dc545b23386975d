// Package cli implements the brewpoint command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "0.1.0"

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "brewpoint.toml", "Path to the TOML config file")
}

var rootCmd = &cobra.Command{
	Use:   "brewpoint",
	Short: "Coffee shop order and rewards ledger",
	Long: `Brewpoint runs a single-session ordering ledger: a cart, a loyalty
points account and an order history, served as a JSON API.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
