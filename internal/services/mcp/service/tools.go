package service

import (
	"fmt"

	"github.com/fastmcp-me/heybeauty-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
	AddResourceTemplate(*mcp.ResourceTemplate, mcp.ResourceHandler)
	AddPrompt(*mcp.Prompt, mcp.PromptHandler)
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

func (r mcpServerRegistrationAdapter) AddResourceTemplate(resourceTemplate *mcp.ResourceTemplate, handler mcp.ResourceHandler) {
	r.server.AddResourceTemplate(resourceTemplate, handler)
}

func (r mcpServerRegistrationAdapter) AddPrompt(prompt *mcp.Prompt, handler mcp.PromptHandler) {
	r.server.AddPrompt(prompt, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.SubmitTryOnInput, domain.TryOnTaskResult](),
	newMCPToolRegistrar[domain.QueryTryOnInput, domain.TryOnTaskResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func registerTryOnTools(registrar mcpRegistrationTarget, newClient domain.ClientFactory, apiKey string) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.SubmitTryOnTool(), handler: domain.SubmitTryOnHandler(newClient, apiKey)},
		{tool: domain.QueryTryOnTool(), handler: domain.QueryTryOnHandler(newClient, apiKey)},
	}
	for _, registration := range registrations {
		if registration.tool == nil {
			return fmt.Errorf("tool is nil")
		}
		if err := registrar.AddTool(registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

// registerClothResources registers the readable clothing catalog resources.
func registerClothResources(registrar mcpRegistrationTarget, newClient domain.ClientFactory, apiKey string) {
	registrar.AddResource(domain.ClothListResource(), domain.ClothListResourceHandler(newClient, apiKey))
	registrar.AddResourceTemplate(domain.ClothResourceTemplate(), domain.ClothResourceHandler(newClient, apiKey))
}

// registerTryOnPrompts registers the try-on workflow prompt.
func registerTryOnPrompts(registrar mcpRegistrationTarget) {
	registrar.AddPrompt(domain.TryOnPrompt(), domain.TryOnPromptHandler())
}
