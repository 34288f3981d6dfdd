// Package domain translates MCP operations into HeyBeauty try-on API calls.
//
// The package is intentionally explicit about that mapping:
// - resolve the effective API credential for the request,
// - route tool and resource calls to the remote REST client,
// - and surface structured outputs that MCP clients can render.
//
// This keeps MCP behavior auditable from protocol message -> remote API call ->
// response projection.
package domain
