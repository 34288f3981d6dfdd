// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/fastmcp-me/heybeauty-mcp/internal/platform/config"
	"github.com/fastmcp-me/heybeauty-mcp/internal/platform/otel"
	"github.com/fastmcp-me/heybeauty-mcp/internal/services/mcp/service"
)

// Config holds MCP command configuration. The API key has no flag on purpose:
// it is read from the environment or supplied per request over HTTP, never
// from the command line.
type Config struct {
	APIKey    string `env:"HEYBEAUTY_API_KEY"`
	BaseURL   string `env:"HEYBEAUTY_API_BASE_URL"  envDefault:"https://heybeauty.ai/api"`
	HTTPAddr  string `env:"HEYBEAUTY_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"HEYBEAUTY_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "HeyBeauty API base URL")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "heybeauty-mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, &service.Config{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
