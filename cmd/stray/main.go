package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/stray/config"
)

const version = "0.1.0"

// errFindings makes the process exit with status 1 without printing an
// error message; the command has already reported what it found.
var errFindings = errors.New("findings reported")

var (
	cfgFile   string
	verbosity int
	cfg       *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "stray",
		Short:         "Find and fix Java members declared outside of a class",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.Load(cfgFile)
			} else {
				cfg, err = config.LoadFromDir(".")
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var logFile *string
			if cfg.Log.File != "" {
				logFile = &cfg.Log.File
			}
			commonlog.Configure(cfg.Log.Level+verbosity, logFile)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the nearest "+config.FileName+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newOutlineCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "stray: %s\n", err)
		}
		os.Exit(1)
	}
}
