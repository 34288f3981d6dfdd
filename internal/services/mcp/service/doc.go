// Package service wires protocol transport to domain handlers.
//
// It is the transport adapter layer: the package knows how to run MCP over
// stdio or HTTP and delegates business meaning to the domain handlers that
// call the HeyBeauty API.
package service
