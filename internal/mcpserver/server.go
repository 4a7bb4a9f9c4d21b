package mcpserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aellingwood/iconforge/internal/config"
)

// IconServer is the MCP server for iconforge.
type IconServer struct {
	server  *mcp.Server
	cfg     *config.Config
	version string

	mu      sync.Mutex // serializes generations and guards lastRun
	lastRun *RunDetail
}

// New creates an IconServer for a validated configuration.
func New(cfg *config.Config, version string) *IconServer {
	s := &IconServer{
		cfg:     cfg,
		version: version,
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "iconforge",
			Version: version,
		},
		&mcp.ServerOptions{
			SubscribeHandler:   s.handleSubscribe,
			UnsubscribeHandler: s.handleUnsubscribe,
		},
	)

	s.registerResources()
	s.registerTools()

	return s
}

// Run starts the MCP server on the given transport.
func (s *IconServer) Run(ctx context.Context, transport mcp.Transport) error {
	s.startWatcher(ctx)
	return s.server.Run(ctx, transport)
}

func ptr[T any](v T) *T {
	return &v
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{IsError: true, Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}}}
}

// handleSubscribe accepts subscriptions to the server's own resources; the
// SDK tracks subscribed sessions and ResourceUpdated fans out to them.
func (s *IconServer) handleSubscribe(ctx context.Context, req *mcp.SubscribeRequest) error {
	switch req.Params.URI {
	case uriConfig, uriPlan, uriSource, uriStatus:
		return nil
	}
	return fmt.Errorf("unknown resource %q", req.Params.URI)
}

func (s *IconServer) handleUnsubscribe(ctx context.Context, req *mcp.UnsubscribeRequest) error {
	return nil
}
