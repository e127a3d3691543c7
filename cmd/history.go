package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var clearHistory bool

// historyCmd prints the persisted history
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print or clear the saved command history.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fsys := afero.NewOsFs()

		cfg, err := loadConfig(fsys)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd.ErrOrStderr(), cfg)
		if err != nil {
			return err
		}

		hist := openHistory(fsys, cfg, log)
		if hist.Path() == "" {
			return fmt.Errorf("history isn't saved, history_file is empty")
		}

		if clearHistory {
			hist.Clear()
			return hist.Save()
		}

		for i, line := range hist.Lines() {
			fmt.Fprintf(cmd.OutOrStdout(), "%5d  %s\n", i, line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVarP(&clearHistory, "clear", "c", false, "clear the saved history")
	rootCmd.AddCommand(historyCmd)
}
