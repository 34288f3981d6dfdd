// Package heybeauty provides a client for the HeyBeauty virtual try-on API.
//
// The client is stateless: every operation is a single HTTP POST with bearer
// authorization, and the remote service owns all task state. Responses share a
// uniform envelope {code, message, data} that is unwrapped in one place.
package heybeauty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production endpoint for the HeyBeauty API.
const DefaultBaseURL = "https://heybeauty.ai/api"

// defaultRequestTimeout caps a single remote call. Try-on submission uploads
// nothing itself but the remote side validates both image URLs synchronously,
// which can take a few seconds.
const defaultRequestTimeout = 30 * time.Second

// Client issues requests against the HeyBeauty REST API on behalf of one
// credential. Construction is cheap, so callers that resolve credentials
// per request create a fresh Client per call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a HeyBeauty API client using the given bearer credential.
// An empty baseURL selects the production endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// ListClothes fetches the clothing catalog. The window is fixed at page 1 /
// limit 10; the remote catalog does not grow beyond it.
func (c *Client) ListClothes(ctx context.Context) ([]ClothingItem, error) {
	return post[[]ClothingItem](ctx, c, "/clothes-list", listClothesRequest{Page: 1, Limit: 10})
}

// SubmitTask creates an asynchronous try-on task from a user photo URL and a
// clothing image URL. The remote side assigns the task identifier; callers
// poll QueryTask until the status is terminal.
func (c *Client) SubmitTask(ctx context.Context, req SubmitTaskRequest) (TryOnTask, error) {
	if strings.TrimSpace(req.UserImgURL) == "" {
		return TryOnTask{}, &ValidationError{Message: "user image url is required"}
	}
	if strings.TrimSpace(req.ClothImgURL) == "" {
		return TryOnTask{}, &ValidationError{Message: "cloth image url is required"}
	}

	record, err := post[taskRecord](ctx, c, "/create-task", createTaskRequest{
		UserImgURL:  req.UserImgURL,
		ClothImgURL: req.ClothImgURL,
		Category:    "1",
		IsSync:      "0",
		ClothID:     req.ClothID,
		Caption:     req.ClothDescription,
	})
	if err != nil {
		return TryOnTask{}, err
	}
	return taskFromRecord(record, record.UUID), nil
}

// QueryTask reads the current state of a try-on task. The returned task always
// carries the caller-supplied taskID; the remote response is not required to
// echo it.
func (c *Client) QueryTask(ctx context.Context, taskID string) (TryOnTask, error) {
	if strings.TrimSpace(taskID) == "" {
		return TryOnTask{}, &ValidationError{Message: "task id is required"}
	}

	record, err := post[taskRecord](ctx, c, "/task-info", taskInfoRequest{TaskUUID: taskID})
	if err != nil {
		return TryOnTask{}, err
	}
	return taskFromRecord(record, taskID), nil
}

func taskFromRecord(record taskRecord, taskID string) TryOnTask {
	return TryOnTask{
		TaskID:      taskID,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		Status:      record.Status,
		TryOnImgURL: record.TryOnImgURL,
	}
}

// post issues one HTTP POST and unwraps the response envelope into the
// expected data shape. Every remote failure funnels through the same two
// checks: HTTP status first, envelope code second.
func post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("request %s: %w", path, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return zero, &TransportError{StatusCode: resp.StatusCode}
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	if env.Code != 0 {
		return zero, &RemoteError{Code: env.Code, Message: env.Message}
	}
	return env.Data, nil
}

// drainAndClose empties the response body so the underlying connection can be
// reused, then closes it.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
