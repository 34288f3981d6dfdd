package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fastmcp-me/heybeauty-mcp/internal/heybeauty"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func testCatalog() []heybeauty.ClothingItem {
	return []heybeauty.ClothingItem{
		{ClothID: "c1", Title: "Denim Jacket", Description: "Blue denim", ClothImgURL: "https://img/c1.jpg"},
		{ClothID: "c2", Title: "Red Dress", Description: "Evening wear", ClothImgURL: "https://img/c2.jpg"},
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestClothListResourceHandler(t *testing.T) {
	fake := &fakeTryOnClient{listResp: testCatalog()}
	handler := ClothListResourceHandler(factoryFor(fake), "k")

	result, err := handler(context.Background(), readRequest("cloth:///list"))
	if err != nil {
		t.Fatalf("read cloth list: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Contents))
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("expected application/json, got %q", result.Contents[0].MIMEType)
	}

	var payload ClothListPayload
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Clothes) != 2 {
		t.Fatalf("expected 2 clothes, got %d", len(payload.Clothes))
	}
	for i, cloth := range testCatalog() {
		entry := payload.Clothes[i]
		if entry.URI != "cloth:///"+cloth.ClothID {
			t.Errorf("expected URI cloth:///%s, got %q", cloth.ClothID, entry.URI)
		}
		if entry.Title != cloth.Title || entry.ClothImgURL != cloth.ClothImgURL {
			t.Errorf("entry %d does not match catalog item: %+v", i, entry)
		}
	}
}

func TestClothListResourceHandlerMissingKey(t *testing.T) {
	fake := &fakeTryOnClient{listResp: testCatalog()}
	handler := ClothListResourceHandler(factoryFor(fake), "")

	_, err := handler(context.Background(), readRequest("cloth:///list"))
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
	}
}

func TestClothResourceHandler(t *testing.T) {
	t.Run("round-trips catalog entries", func(t *testing.T) {
		fake := &fakeTryOnClient{listResp: testCatalog()}
		handler := ClothResourceHandler(factoryFor(fake), "k")

		for _, cloth := range testCatalog() {
			result, err := handler(context.Background(), readRequest("cloth:///"+cloth.ClothID))
			if err != nil {
				t.Fatalf("read cloth %s: %v", cloth.ClothID, err)
			}
			if len(result.Contents) != 1 {
				t.Fatalf("expected one content item, got %d", len(result.Contents))
			}
			if result.Contents[0].Text != cloth.ClothImgURL {
				t.Errorf("expected image URL %q, got %q", cloth.ClothImgURL, result.Contents[0].Text)
			}
			if result.Contents[0].MIMEType != "text/plain" {
				t.Errorf("expected text/plain, got %q", result.Contents[0].MIMEType)
			}
		}
	})

	t.Run("unknown cloth id", func(t *testing.T) {
		fake := &fakeTryOnClient{listResp: testCatalog()}
		handler := ClothResourceHandler(factoryFor(fake), "k")

		_, err := handler(context.Background(), readRequest("cloth:///nope"))
		var notFoundErr *heybeauty.NotFoundError
		if !errors.As(err, &notFoundErr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if notFoundErr.ClothID != "nope" {
			t.Errorf("expected cloth id nope, got %q", notFoundErr.ClothID)
		}
	})

	t.Run("remote failure", func(t *testing.T) {
		fake := &fakeTryOnClient{listErr: &heybeauty.TransportError{StatusCode: 503}}
		handler := ClothResourceHandler(factoryFor(fake), "k")

		_, err := handler(context.Background(), readRequest("cloth:///c1"))
		var transportErr *heybeauty.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %v", err)
		}
	})
}

func TestParseClothIDFromURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{"cloth:///c1", "c1", false},
		{"cloth:///abc-123", "abc-123", false},
		{"cloth:///", "", true},
		{"cloth:///list", "", true},
		{"cloth:///c1/extra", "", true},
		{"cloth:///c1?x=1", "", true},
		{"cloth:///c1#frag", "", true},
		{"catalog://c1", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseClothIDFromURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
