package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastmcp-me/heybeauty-mcp/internal/heybeauty"
	"github.com/fastmcp-me/heybeauty-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "HeyBeauty MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server. It is constructed once at startup and
// passed by reference; there is no ambient global configuration.
type Config struct {
	// APIKey is the process-wide HeyBeauty credential. A bearer token on an
	// inbound HTTP request overrides it per call.
	APIKey string
	// BaseURL overrides the HeyBeauty API endpoint; empty selects production.
	BaseURL string
	// Transport selects stdio or HTTP.
	Transport TransportKind
	// HTTPAddr is the HTTP server address. Defaults to localhost:8081 for
	// HTTP transport.
	HTTPAddr string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

func newMCPRegistrationModules(newClient domain.ClientFactory, apiKey string) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: "tryon-tools",
			register: func(registrar mcpRegistrationTarget) error {
				return registerTryOnTools(registrar, newClient, apiKey)
			},
		},
		{
			name: "cloth-resources",
			register: func(registrar mcpRegistrationTarget) error {
				registerClothResources(registrar, newClient, apiKey)
				return nil
			},
		},
		{
			name: "tryon-prompts",
			register: func(registrar mcpRegistrationTarget) error {
				registerTryOnPrompts(registrar)
				return nil
			},
		},
	}
}

// New creates a configured MCP server with try-on tool, resource, and prompt
// handlers bound to the HeyBeauty API.
func New(cfg *Config) (*Server, error) {
	newClient := func(apiKey string) domain.TryOnClient {
		return heybeauty.NewClient(cfg.BaseURL, apiKey)
	}
	return newServer(newClient, cfg.APIKey)
}

// newServer builds the MCP server and registers all handler modules. The
// client factory is injectable so tests can substitute a fake remote API.
func newServer(newClient domain.ClientFactory, apiKey string) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	for _, module := range newMCPRegistrationModules(newClient, apiKey) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}

	return &Server{mcpServer: mcpServer}, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
// It is transport-agnostic so startup can choose stdio for local tools and
// HTTP for remote integrations.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		server, err := New(cfg)
		if err != nil {
			return err
		}
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithHTTPTransport creates a server and serves it over streamable HTTP.
// HTTP-only concerns (bearer capture, health endpoint, shutdown) stay isolated
// from the same domain handlers used by stdio.
func runWithHTTPTransport(ctx context.Context, cfg *Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}

	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = "localhost:8081"
	}

	transport := NewHTTPTransport(httpAddr, server.mcpServer)
	return transport.Start(ctx)
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
// Context cancellation is the normal shutdown path and is not reported as an
// error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
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
