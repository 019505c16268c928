package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can build and
merge PDFs.

Tools:
  build_pdf      - Build one PDF from archives, images and text files
  merge_pdfs     - Merge two or more PDF files into one
  classify_file  - Report how a file would be imported

Resources:
  zip2pdf://settings  - Current settings
  zip2pdf://sessions  - Saved sessions
  zip2pdf://sessions/{name}/pages  - Pages of one session

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead, for example to test with MCP Inspector.

Examples:
  # Stdio mode (default)
  zip2pdf mcp serve

  # HTTP mode
  zip2pdf mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "zip2pdf": {
        "command": "/path/to/zip2pdf",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

// serveMCP runs the server. Replaced in tests.
var serveMCP = func(cmd *cobra.Command, server *mcp.Server, port int) error {
	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
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

	ports := &mcp.Ports{
		Sessions:   sessionManager,
		Merge:      mergeService,
		Classifier: classifier,
		Settings:   settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	return serveMCP(cmd, server, port)
}
