// Package service hosts the MCP server that exposes commitment tools
// over stdio.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trothapp/troth/internal/mcp/domain"
	"github.com/trothapp/troth/internal/platform/branding"
	"github.com/trothapp/troth/internal/storage"
	"github.com/trothapp/troth/internal/user"
)

const (
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// serverName labels the MCP implementation for connecting clients.
var serverName = branding.AppName + " MCP"

// Config configures the MCP server.
type Config struct {
	// Username selects the account every tool call acts on behalf of.
	// MCP runs over trusted local stdio, so the acting user is fixed at
	// startup instead of authenticated per request.
	Username string
	Store    storage.Store
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server with commitment tools bound to the
// given store.
func New(cfg Config) (*Server, error) {
	username := strings.ToLower(strings.TrimSpace(cfg.Username))
	if username == "" {
		return nil, errors.New("acting username is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	// The actor is looked up per call so an account created after startup
	// is usable without restarting the server.
	actor := func(ctx context.Context) (user.User, error) {
		acting, err := cfg.Store.GetUserByUsername(ctx, username)
		if err != nil {
			return user.User{}, fmt.Errorf("resolve acting user %q: %w", username, err)
		}
		return acting, nil
	}

	mcp.AddTool(mcpServer, domain.CommitmentListTool(), domain.CommitmentListHandler(cfg.Store, actor))
	mcp.AddTool(mcpServer, domain.CommitmentDeclareTool(), domain.CommitmentDeclareHandler(cfg.Store, actor))
	mcp.AddTool(mcpServer, domain.CommitmentResolveTool(), domain.CommitmentResolveHandler(cfg.Store, actor))
	mcp.AddTool(mcpServer, domain.CommitmentStatsTool(), domain.CommitmentStatsHandler(cfg.Store, actor))

	return &Server{mcpServer: mcpServer}, nil
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
