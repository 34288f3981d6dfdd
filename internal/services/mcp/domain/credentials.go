package domain

import (
	"context"
	"errors"
	"strings"
)

// ErrAPIKeyMissing reports that no API credential was available for a request.
var ErrAPIKeyMissing = errors.New("API key not set")

type apiKeyContextKey struct{}

// ContextWithAPIKey stores a request-scoped API key on the context. The HTTP
// transport uses this to forward the caller's bearer token into handlers.
func ContextWithAPIKey(ctx context.Context, apiKey string) context.Context {
	return context.WithValue(ctx, apiKeyContextKey{}, apiKey)
}

// APIKeyFromContext returns the request-scoped API key, if any.
func APIKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(apiKeyContextKey{}).(string)
	return key
}

// resolveAPIKey picks the effective credential for a request: the
// request-scoped key wins over the process-wide fallback. The key is never
// logged or persisted.
func resolveAPIKey(ctx context.Context, fallback string) (string, error) {
	if key := strings.TrimSpace(APIKeyFromContext(ctx)); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(fallback); key != "" {
		return key, nil
	}
	return "", ErrAPIKeyMissing
}
