package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// tryOnPromptText guides a calling agent through the full try-on workflow.
// Polling cadence is a client-side concern; the server never enforces it.
const tryOnPromptText = `You help the user try on clothing virtually.

Workflow:
1. Read the cloth:///list resource (or ask the user for a clothing image URL)
   and confirm which item to try on.
2. Ask the user for a photo URL of themselves.
3. Call submit_tryon_task with user_img_url and cloth_img_url (pass cloth_id
   and cloth_description when the item came from the catalog). Remember the
   returned task_id.
4. Poll query_tryon_task with that task_id about every 5 seconds until the
   status is succeeded or failed.
5. On succeeded, render the result as an image using tryon_img_url. On failed,
   tell the user the try-on did not work and offer to retry with different
   images.`

// TryOnPrompt defines the MCP prompt schema for the try-on workflow.
func TryOnPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "tryon_cloth",
		Description: "Guides an agent through the submit, poll, and render steps of a virtual try-on.",
	}
}

// TryOnPromptHandler returns the fixed try-on workflow instructions.
func TryOnPromptHandler() mcp.PromptHandler {
	return func(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: "Virtual try-on workflow",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: tryOnPromptText,
					},
				},
			},
		}, nil
	}
}
