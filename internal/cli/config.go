package cli

import (
	"github.com/spf13/cobra"

	"github.com/brewpoint/brewpoint/internal/daemon"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, the config file and BREWPOINT_* environment overrides are applied.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}
	return cfg.Encode(cmd.OutOrStdout())
}
