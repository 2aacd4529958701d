package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xamlnav/internal/cli/config"
	"github.com/leapstack-labs/xamlnav/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC and provides
document symbols (the outline), hover details and workspace symbols for
XAML documents. A xamlnav.yaml in the workspace root reported by the
client's initialize request overrides the CLI configuration.`,
		Example: `  # Start LSP server (usually called by an editor)
  xamlnav lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd, version)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command, version string) error {
	logger := config.GetLogger(cmd.Context())
	server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, logger)
	server.SetVersion(version)
	server.Configure(getConfig().Project())
	if getConfig().Force {
		server.SetPredicate(nil)
	}
	return server.Run(cmd.Context())
}
