package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/fastmcp-me/heybeauty-mcp/internal/heybeauty"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SubmitTryOnHandler executes a try-on task submission.
func SubmitTryOnHandler(newClient ClientFactory, defaultAPIKey string) mcp.ToolHandlerFor[SubmitTryOnInput, TryOnTaskResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SubmitTryOnInput) (*mcp.CallToolResult, TryOnTaskResult, error) {
		if strings.TrimSpace(input.UserImgURL) == "" {
			return nil, TryOnTaskResult{}, fmt.Errorf("submit try-on task failed: %w", &heybeauty.ValidationError{Message: "user image url is required"})
		}
		if strings.TrimSpace(input.ClothImgURL) == "" {
			return nil, TryOnTaskResult{}, fmt.Errorf("submit try-on task failed: %w", &heybeauty.ValidationError{Message: "cloth image url is required"})
		}

		apiKey, err := resolveAPIKey(ctx, defaultAPIKey)
		if err != nil {
			return nil, TryOnTaskResult{}, fmt.Errorf("submit try-on task failed: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		task, err := newClient(apiKey).SubmitTask(runCtx, heybeauty.SubmitTaskRequest{
			UserImgURL:       input.UserImgURL,
			ClothImgURL:      input.ClothImgURL,
			ClothID:          input.ClothID,
			ClothDescription: input.ClothDescription,
		})
		if err != nil {
			return nil, TryOnTaskResult{}, fmt.Errorf("submit try-on task failed: %w", err)
		}
		return nil, tryOnTaskResult(task), nil
	}
}

// QueryTryOnHandler executes a try-on task status query.
func QueryTryOnHandler(newClient ClientFactory, defaultAPIKey string) mcp.ToolHandlerFor[QueryTryOnInput, TryOnTaskResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QueryTryOnInput) (*mcp.CallToolResult, TryOnTaskResult, error) {
		taskID := strings.TrimSpace(input.TaskID)
		if taskID == "" {
			return nil, TryOnTaskResult{}, fmt.Errorf("query try-on task failed: %w", &heybeauty.ValidationError{Message: "task id is required"})
		}

		apiKey, err := resolveAPIKey(ctx, defaultAPIKey)
		if err != nil {
			return nil, TryOnTaskResult{}, fmt.Errorf("query try-on task failed: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		task, err := newClient(apiKey).QueryTask(runCtx, taskID)
		if err != nil {
			return nil, TryOnTaskResult{}, fmt.Errorf("query try-on task failed: %w", err)
		}
		return nil, tryOnTaskResult(task), nil
	}
}
