package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/josephlewis42/hsh/commands"
	"github.com/josephlewis42/hsh/core/config"
	"github.com/josephlewis42/hsh/core/env"
	"github.com/josephlewis42/hsh/core/history"
	"github.com/josephlewis42/hsh/core/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgPath       string
	logLevel      string
	commandString string

	// exitCode is the status the process exits with once the root command
	// finishes.
	exitCode int
)

// shellName is the name used to prefix shell error messages.
func shellName() string {
	if len(os.Args) > 0 && os.Args[0] != "" {
		return os.Args[0]
	}
	return commands.DefaultName
}

func configDir() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultDir(os.Getenv)
}

func loadConfig(fsys afero.Fs) (*config.Configuration, error) {
	return config.LoadOrDefault(fsys, configDir())
}

func newLogger(w io.Writer, cfg *config.Configuration) (*slog.Logger, error) {
	name := cfg.LogLevel
	if logLevel != "" {
		name = logLevel
	}
	level, err := logger.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logger.New(w, level), nil
}

func openHistory(fsys afero.Fs, cfg *config.Configuration, log *slog.Logger) *history.Log {
	hist := history.New(fsys, cfg.HistoryPath(os.Getenv(commands.EnvHome)), cfg.HistoryMax)
	if err := hist.Load(); err != nil {
		log.Warn("couldn't load history", "error", err)
	}
	return hist
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hsh [flags] [script]",
	Short: "A simple command interpreter",
	Long: `hsh reads command lines from a terminal, a script or -c and runs
them. Commands may be chained with ;, && and ||.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := afero.NewOsFs()

		cfg, err := loadConfig(fsys)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd.ErrOrStderr(), cfg)
		if err != nil {
			return err
		}

		name := shellName()
		opts := commands.Options{
			Name:    name,
			Env:     env.NewStoreFromOS(),
			Config:  cfg,
			History: openHistory(fsys, cfg, log),
			Stdin:   os.Stdin,
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
			Logger:  log,
		}

		switch {
		case cmd.Flags().Changed("command"):
			if len(args) > 0 {
				opts.Name = args[0]
			}
			opts.Input = commands.NewStringReader(commandString)

		case len(args) == 1:
			fd, err := os.Open(args[0])
			if err != nil {
				log.Debug("open script", "path", args[0], "error", err)
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: 0: Can't open %s\n", name, args[0])
				exitCode = commands.StatusNotFound
				return nil
			}
			opts.Input = commands.NewScriptReader(fd)

		case term.IsTerminal(int(os.Stdin.Fd())):
			rl, err := commands.NewTerminalReader(commands.TerminalOptions{
				Stdin:        os.Stdin,
				Stdout:       cmd.OutOrStdout(),
				Stderr:       cmd.ErrOrStderr(),
				HistoryLimit: cfg.HistoryMax,
				Recall:       opts.History.Lines(),
			})
			if err != nil {
				return fmt.Errorf("couldn't open terminal: %w", err)
			}
			opts.Input = rl
			opts.Interactive = true

		default:
			opts.Input = commands.NewScriptReader(io.NopCloser(os.Stdin))
		}

		log.Debug("starting shell", "interactive", opts.Interactive, "config", cfg.Dir())
		exitCode = commands.NewShell(opts).Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// The returned value is the status the process should exit with.
func Execute() int {
	cobra.CheckErr(rootCmd.Execute())
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory or config.yaml path (default $HOME/.config/hsh)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level: debug, info, warn or error")
	rootCmd.Flags().StringVarP(&commandString, "command", "c", "", "read commands from the given string")
}
