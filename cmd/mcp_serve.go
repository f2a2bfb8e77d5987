package cmd

import (
	"github.com/chris-regnier/wellnessctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes wellness tools
over stdio transport. This allows MCP clients like Claude Desktop to log
check-ins, write journal entries and read trends.

Available tools:
  - score_sentiment: Score text sentiment without storing it
  - log_checkin: Record a mood check-in and get recommendations
  - write_journal: Write a journal entry with scored sentiment
  - list_journal: List journal entries by date range or tag
  - get_trend: Mood trend summary with daily averages
  - get_recommendations: Recommendations for the latest or given check-in
  - complete_recommendation: Mark a recommendation done for today

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "wellnessctl": {
        "command": "/path/to/wellnessctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	server := mcptools.CreateMCPServer(mcptools.Deps{
		Service: svc,
		Session: sess,
		DataDir: appConfig.DataDir,
		Logger:  logger,
		Version: rootCmd.Version,
	})

	// The logger writes to stderr; stdout is reserved for the MCP protocol.
	logger.Info("starting MCP server (stdio transport)",
		zap.String("storage", appConfig.Storage),
		zap.String("data_dir", appConfig.DataDir),
	)

	// This blocks until the transport is closed
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
