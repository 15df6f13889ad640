package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the aggregate_search tool, which returns sectioned,
trust-scored results for a topic, and resources describing the configured
providers.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead, for the MCP Inspector or remote access.

Examples:
  # Stdio mode (default)
  trustsearch mcp serve

  # HTTP mode
  trustsearch mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "trustsearch": {
        "command": "/path/to/trustsearch",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Aggregator: svc.Aggregator,
		Providers:  svc.Providers,
		Settings:   svc.Settings,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
