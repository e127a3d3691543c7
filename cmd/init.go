package cmd

import (
	"log"

	"github.com/josephlewis42/hsh/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration if none exists.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		cfg, err := config.Initialize(afero.NewOsFs(), configDir(), logger)
		if err != nil {
			return err
		}
		logger.Printf("- Configuration in %s is valid", cfg.Dir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
