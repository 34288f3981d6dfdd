package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fastmcp-me/heybeauty-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultShutdownTimeout is the maximum time to wait for graceful HTTP server
// shutdown, long enough for in-flight remote API calls to complete.
const defaultShutdownTimeout = 35 * time.Second

// HTTPTransport serves MCP over the SDK's streamable HTTP transport. A bearer
// token on an inbound request is captured into the request context so domain
// handlers can prefer it over the process-wide credential.
type HTTPTransport struct {
	addr       string
	server     *mcp.Server
	httpServer *http.Server
}

// NewHTTPTransport creates an HTTP transport for the given MCP server. It
// defaults to localhost-only binding so the default footprint stays
// constrained to local development.
func NewHTTPTransport(addr string, server *mcp.Server) *HTTPTransport {
	if addr == "" {
		addr = "localhost:8081"
	}
	return &HTTPTransport{addr: addr, server: server}
}

// Start starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (t *HTTPTransport) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", withBearerAPIKey(t.mcpHandler()))
	mux.HandleFunc("/mcp/health", handleHealth)

	t.httpServer = &http.Server{
		Addr:    t.addr,
		Handler: mux,
	}

	log.Printf("Starting MCP HTTP server on %s", t.addr)

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// mcpHandler serves the streamable HTTP MCP protocol. Every session talks to
// the same server instance; the per-request credential travels on the request
// context, not on the server.
func (t *HTTPTransport) mcpHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil)
}

// withBearerAPIKey copies an Authorization bearer token into the request
// context for per-request credential resolution. Requests without a token pass
// through unchanged and fall back to the configured key.
func withBearerAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token != "" {
				r = r.WithContext(domain.ContextWithAPIKey(r.Context(), token))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
