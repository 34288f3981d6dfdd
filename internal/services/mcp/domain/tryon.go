package domain

import (
	"context"
	"time"

	"github.com/fastmcp-me/heybeauty-mcp/internal/heybeauty"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// apiCallTimeout caps the time for a single remote API call from an MCP
// handler. The remote side validates image URLs synchronously on submission,
// so this is deliberately generous.
const apiCallTimeout = 30 * time.Second

// TryOnClient is the subset of the HeyBeauty client used by MCP handlers.
type TryOnClient interface {
	ListClothes(ctx context.Context) ([]heybeauty.ClothingItem, error)
	SubmitTask(ctx context.Context, req heybeauty.SubmitTaskRequest) (heybeauty.TryOnTask, error)
	QueryTask(ctx context.Context, taskID string) (heybeauty.TryOnTask, error)
}

// ClientFactory builds a remote API client bound to one credential.
// Credentials are resolved per request, so handlers construct a fresh client
// for every call rather than sharing one.
type ClientFactory func(apiKey string) TryOnClient

// SubmitTryOnInput represents the MCP tool input for try-on task submission.
type SubmitTryOnInput struct {
	UserImgURL       string `json:"user_img_url" jsonschema:"URL of the user photo"`
	ClothImgURL      string `json:"cloth_img_url" jsonschema:"URL of the clothing image"`
	ClothID          string `json:"cloth_id,omitempty" jsonschema:"optional catalog clothing identifier"`
	ClothDescription string `json:"cloth_description,omitempty" jsonschema:"optional clothing description"`
}

// QueryTryOnInput represents the MCP tool input for try-on task polling.
type QueryTryOnInput struct {
	TaskID string `json:"task_id" jsonschema:"try-on task identifier returned by submit_tryon_task"`
}

// TryOnTaskResult represents the MCP tool output for both try-on tools.
type TryOnTaskResult struct {
	TaskID      string `json:"task_id" jsonschema:"try-on task identifier"`
	CreatedAt   int64  `json:"created_at" jsonschema:"unix timestamp when the task was created"`
	UpdatedAt   int64  `json:"updated_at" jsonschema:"unix timestamp when the task was last updated"`
	Status      string `json:"status" jsonschema:"task status (pending, succeeded, failed)"`
	TryOnImgURL string `json:"tryon_img_url" jsonschema:"result image URL, empty until the task succeeds"`
}

func tryOnTaskResult(task heybeauty.TryOnTask) TryOnTaskResult {
	return TryOnTaskResult{
		TaskID:      task.TaskID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Status:      task.Status,
		TryOnImgURL: task.TryOnImgURL,
	}
}

// SubmitTryOnTool defines the MCP tool schema for try-on task submission.
func SubmitTryOnTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "submit_tryon_task",
		Description: "Submits an asynchronous virtual try-on task from a user photo URL and a clothing image URL. Poll query_tryon_task for the result.",
	}
}

// QueryTryOnTool defines the MCP tool schema for try-on task polling.
func QueryTryOnTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "query_tryon_task",
		Description: "Queries the status of a virtual try-on task. Terminal statuses are succeeded and failed.",
	}
}
