package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lasso/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the open_document, page_words and select_text tools and
the lasso://document resource.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  lasso mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  lasso mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "lasso": {
        "command": "/path/to/lasso",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{}
	if newViewer != nil {
		ports.Viewer = newViewer(ViewerOptions{})
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}
	defer closeViewer(ports.Viewer)

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
