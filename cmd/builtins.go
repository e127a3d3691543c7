package cmd

import (
	"fmt"

	"github.com/josephlewis42/hsh/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands implemented inside the shell
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range commands.BuiltinNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, commands.AllBuiltins[name].Short)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
