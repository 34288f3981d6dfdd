package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fastmcp-me/heybeauty-mcp/internal/heybeauty"
)

// fakeTryOnClient records calls and replays canned responses.
type fakeTryOnClient struct {
	apiKey string

	listResp []heybeauty.ClothingItem
	listErr  error

	submitReq  heybeauty.SubmitTaskRequest
	submitResp heybeauty.TryOnTask
	submitErr  error

	queryTaskID string
	queryResp   heybeauty.TryOnTask
	queryErr    error

	calls int
}

func (f *fakeTryOnClient) ListClothes(_ context.Context) ([]heybeauty.ClothingItem, error) {
	f.calls++
	return f.listResp, f.listErr
}

func (f *fakeTryOnClient) SubmitTask(_ context.Context, req heybeauty.SubmitTaskRequest) (heybeauty.TryOnTask, error) {
	f.calls++
	f.submitReq = req
	return f.submitResp, f.submitErr
}

func (f *fakeTryOnClient) QueryTask(_ context.Context, taskID string) (heybeauty.TryOnTask, error) {
	f.calls++
	f.queryTaskID = taskID
	return f.queryResp, f.queryErr
}

// factoryFor returns a ClientFactory that hands out the fake and records the
// credential it was constructed with.
func factoryFor(fake *fakeTryOnClient) ClientFactory {
	return func(apiKey string) TryOnClient {
		fake.apiKey = apiKey
		return fake
	}
}

func TestSubmitTryOnHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeTryOnClient{
			submitResp: heybeauty.TryOnTask{TaskID: "abc123", Status: "pending"},
		}
		handler := SubmitTryOnHandler(factoryFor(fake), "default-key")
		_, result, err := handler(context.Background(), nil, SubmitTryOnInput{
			UserImgURL:  "https://x/u.jpg",
			ClothImgURL: "https://x/c.jpg",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TaskID != "abc123" {
			t.Errorf("expected task_id abc123, got %q", result.TaskID)
		}
		if result.Status != "pending" {
			t.Errorf("expected status pending, got %q", result.Status)
		}
		if fake.apiKey != "default-key" {
			t.Errorf("expected default key, got %q", fake.apiKey)
		}
	})

	t.Run("forwards optional fields", func(t *testing.T) {
		fake := &fakeTryOnClient{}
		handler := SubmitTryOnHandler(factoryFor(fake), "k")
		_, _, err := handler(context.Background(), nil, SubmitTryOnInput{
			UserImgURL:       "https://x/u.jpg",
			ClothImgURL:      "https://x/c.jpg",
			ClothID:          "c7",
			ClothDescription: "silk blouse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.submitReq.ClothID != "c7" || fake.submitReq.ClothDescription != "silk blouse" {
			t.Errorf("optional fields not forwarded: %+v", fake.submitReq)
		}
	})

	t.Run("missing user image", func(t *testing.T) {
		fake := &fakeTryOnClient{}
		handler := SubmitTryOnHandler(factoryFor(fake), "k")
		_, _, err := handler(context.Background(), nil, SubmitTryOnInput{ClothImgURL: "https://x/c.jpg"})
		var validationErr *heybeauty.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if fake.calls != 0 {
			t.Error("expected no remote call on validation failure")
		}
	})

	t.Run("missing cloth image", func(t *testing.T) {
		fake := &fakeTryOnClient{}
		handler := SubmitTryOnHandler(factoryFor(fake), "k")
		_, _, err := handler(context.Background(), nil, SubmitTryOnInput{UserImgURL: "https://x/u.jpg"})
		var validationErr *heybeauty.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		fake := &fakeTryOnClient{}
		handler := SubmitTryOnHandler(factoryFor(fake), "")
		_, _, err := handler(context.Background(), nil, SubmitTryOnInput{
			UserImgURL:  "https://x/u.jpg",
			ClothImgURL: "https://x/c.jpg",
		})
		if !errors.Is(err, ErrAPIKeyMissing) {
			t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
		}
		if !strings.Contains(err.Error(), "submit try-on task failed") {
			t.Errorf("expected operation prefix, got %q", err.Error())
		}
	})

	t.Run("request key overrides default", func(t *testing.T) {
		fake := &fakeTryOnClient{}
		handler := SubmitTryOnHandler(factoryFor(fake), "default-key")
		ctx := ContextWithAPIKey(context.Background(), "request-key")
		_, _, err := handler(ctx, nil, SubmitTryOnInput{
			UserImgURL:  "https://x/u.jpg",
			ClothImgURL: "https://x/c.jpg",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.apiKey != "request-key" {
			t.Errorf("expected request-scoped key to win, got %q", fake.apiKey)
		}
	})

	t.Run("remote error is wrapped", func(t *testing.T) {
		fake := &fakeTryOnClient{
			submitErr: &heybeauty.RemoteError{Code: 5, Message: "quota exceeded"},
		}
		handler := SubmitTryOnHandler(factoryFor(fake), "k")
		_, _, err := handler(context.Background(), nil, SubmitTryOnInput{
			UserImgURL:  "https://x/u.jpg",
			ClothImgURL: "https://x/c.jpg",
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "submit try-on task failed: quota exceeded") {
			t.Errorf("expected wrapped remote message, got %q", err.Error())
		}
	})
}

func TestQueryTryOnHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeTryOnClient{
			queryResp: heybeauty.TryOnTask{TaskID: "t1", Status: "succeeded", TryOnImgURL: "https://img/r.jpg"},
		}
		handler := QueryTryOnHandler(factoryFor(fake), "k")
		_, result, err := handler(context.Background(), nil, QueryTryOnInput{TaskID: "t1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TaskID != "t1" {
			t.Errorf("expected task_id t1, got %q", result.TaskID)
		}
		if result.TryOnImgURL != "https://img/r.jpg" {
			t.Errorf("unexpected tryon_img_url %q", result.TryOnImgURL)
		}
		if fake.queryTaskID != "t1" {
			t.Errorf("expected query for t1, got %q", fake.queryTaskID)
		}
	})

	t.Run("empty task id", func(t *testing.T) {
		fake := &fakeTryOnClient{}
		handler := QueryTryOnHandler(factoryFor(fake), "k")
		for _, taskID := range []string{"", "   "} {
			_, _, err := handler(context.Background(), nil, QueryTryOnInput{TaskID: taskID})
			var validationErr *heybeauty.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError for %q, got %v", taskID, err)
			}
			if validationErr.Message != "task id is required" {
				t.Errorf("expected %q, got %q", "task id is required", validationErr.Message)
			}
		}
		if fake.calls != 0 {
			t.Error("expected no remote call on validation failure")
		}
	})

	t.Run("trims task id", func(t *testing.T) {
		fake := &fakeTryOnClient{}
		handler := QueryTryOnHandler(factoryFor(fake), "k")
		_, _, err := handler(context.Background(), nil, QueryTryOnInput{TaskID: " t2 "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.queryTaskID != "t2" {
			t.Errorf("expected trimmed task id, got %q", fake.queryTaskID)
		}
	})

	t.Run("remote error is wrapped", func(t *testing.T) {
		fake := &fakeTryOnClient{
			queryErr: fmt.Errorf("connection refused"),
		}
		handler := QueryTryOnHandler(factoryFor(fake), "k")
		_, _, err := handler(context.Background(), nil, QueryTryOnInput{TaskID: "t1"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "query try-on task failed") {
			t.Errorf("expected operation prefix, got %q", err.Error())
		}
	})
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		ctxKey   string
		fallback string
		want     string
		wantErr  bool
	}{
		{"request key wins", "req", "def", "req", false},
		{"fallback when no request key", "", "def", "def", false},
		{"whitespace request key ignored", "  ", "def", "def", false},
		{"neither present", "", "", "", true},
		{"whitespace only", " ", "  ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.ctxKey != "" {
				ctx = ContextWithAPIKey(ctx, tt.ctxKey)
			}
			got, err := resolveAPIKey(ctx, tt.fallback)
			if tt.wantErr {
				if !errors.Is(err, ErrAPIKeyMissing) {
					t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected key %q, got %q", tt.want, got)
			}
		})
	}
}
