package mcptools

import (
	"context"

	"github.com/chris-regnier/wellnessctl/internal/logging"
	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/wellness"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Deps holds what the tool handlers need.
type Deps struct {
	Service *wellness.Service
	Session session.Provider
	// DataDir is used for prompt cache invalidation after writes; "" skips it.
	DataDir string
	Logger  *zap.Logger
	Version string
}

// NewInMemoryServer creates an MCP server exposing the wellness tools and
// connects it to an in-memory transport. Returns the server and the client
// side of the transport.
func NewInMemoryServer(d Deps) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(d)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered wellness tools.
func CreateMCPServer(d Deps) *mcp.Server {
	d.Logger = logging.OrNop(d.Logger)
	version := d.Version
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wellnessctl",
		Version: version,
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "score_sentiment",
		Description: "Score the sentiment of a piece of text on a -1 to 1 scale without storing it",
	}, ScoreSentimentHandler(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_trend",
		Description: "Summarize mood check-ins over the last N days with daily averages",
	}, TrendHandler(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_recommendations",
		Description: "Get wellness recommendations for the latest check-in, or for explicit mood, stress and energy values",
	}, RecommendationsHandler(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_journal",
		Description: "List journal entries with their sentiment, newest first",
	}, ListJournalHandler(d))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_checkin",
		Description: "Record a mood check-in (mood 1-10, energy 1-5, stress 1-5) and return follow-up recommendations",
	}, CheckInHandler(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "write_journal",
		Description: "Write a journal entry; its sentiment is scored and stored with it",
	}, WriteJournalHandler(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_recommendation",
		Description: "Mark a recommendation as completed for today, or clear it with undo",
	}, CompleteHandler(d))

	return server
}
