package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ask for
similar products.

Tools:      recommend, search_products, get_product
Resources:  sourcy://corpus, sourcy://products/{productId}

By default the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead (e.g. for MCP Inspector).

Examples:
  # Stdio mode (default)
  sourcy mcp serve

  # HTTP mode
  sourcy mcp serve --port 8090

Client configuration:
  {
    "mcpServers": {
      "sourcy": {
        "command": "/path/to/sourcy",
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

	server, err := mcp.NewServer(&mcp.Ports{
		Recommend: recommendService,
		Catalog:   catalogService,
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
