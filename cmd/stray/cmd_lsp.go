package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/stray/java/codebase"
)

func newLSPCmd() *cobra.Command {
	var usePoll bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The workspace root is only known after initialize, so an
			// explicit --config is the only configuration loaded here.
			serverCfg := cfg
			if cfgFile == "" {
				serverCfg = nil
			}
			server := codebase.NewLSPServer(version, serverCfg)
			if !usePoll {
				server.PollInterval = 0
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&usePoll, "watch", true, "rescan files changed outside the editor")

	return cmd
}
