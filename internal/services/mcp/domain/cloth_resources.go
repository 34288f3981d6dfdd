package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fastmcp-me/heybeauty-mcp/internal/heybeauty"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const clothURIPrefix = "cloth:///"

// ClothListEntry is one catalog item in the cloth list resource payload.
type ClothListEntry struct {
	URI         string `json:"uri" jsonschema:"resource URI of the clothing item"`
	ClothID     string `json:"cloth_id" jsonschema:"clothing identifier"`
	Title       string `json:"title" jsonschema:"clothing title"`
	Description string `json:"description" jsonschema:"clothing description"`
	ClothImgURL string `json:"cloth_img_url" jsonschema:"clothing image URL"`
}

// ClothListPayload is the JSON body of the cloth list resource.
type ClothListPayload struct {
	Clothes []ClothListEntry `json:"clothes"`
}

// ClothListResource defines the readable clothing catalog resource.
func ClothListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "cloth_list",
		Title:       "Clothes",
		Description: "Readable listing of try-on clothing items. Each entry carries its cloth:///{cloth_id} URI.",
		MIMEType:    "application/json",
		URI:         clothURIPrefix + "list",
	}
}

// ClothResourceTemplate defines the readable single clothing item resource.
func ClothResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "cloth",
		Title:       "Clothing item",
		Description: "Image URL for one clothing item. URI format: cloth:///{cloth_id}",
		MIMEType:    "text/plain",
		URITemplate: clothURIPrefix + "{cloth_id}",
	}
}

// ClothListResourceHandler returns a readable clothing catalog resource. The
// catalog is fetched fresh from the remote API on every read; nothing is
// cached locally.
func ClothListResourceHandler(newClient ClientFactory, defaultAPIKey string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := ClothListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		clothes, err := fetchClothes(ctx, newClient, defaultAPIKey)
		if err != nil {
			return nil, fmt.Errorf("list clothes failed: %w", err)
		}

		payload := ClothListPayload{}
		for _, cloth := range clothes {
			payload.Clothes = append(payload.Clothes, ClothListEntry{
				URI:         clothURIPrefix + cloth.ClothID,
				ClothID:     cloth.ClothID,
				Title:       cloth.Title,
				Description: cloth.Description,
				ClothImgURL: cloth.ClothImgURL,
			})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal cloth list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// ClothResourceHandler returns a readable single clothing item resource whose
// text content is the item's image URL.
func ClothResourceHandler(newClient ClientFactory, defaultAPIKey string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("cloth ID is required; use URI format cloth:///{cloth_id}")
		}
		uri := req.Params.URI

		clothID, err := parseClothIDFromURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse cloth ID from URI: %w", err)
		}

		clothes, err := fetchClothes(ctx, newClient, defaultAPIKey)
		if err != nil {
			return nil, fmt.Errorf("read cloth failed: %w", err)
		}

		for _, cloth := range clothes {
			if cloth.ClothID != clothID {
				continue
			}
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{
					{
						URI:      uri,
						MIMEType: "text/plain",
						Text:     cloth.ClothImgURL,
					},
				},
			}, nil
		}
		return nil, fmt.Errorf("read cloth failed: %w", &heybeauty.NotFoundError{ClothID: clothID})
	}
}

func fetchClothes(ctx context.Context, newClient ClientFactory, defaultAPIKey string) ([]heybeauty.ClothingItem, error) {
	apiKey, err := resolveAPIKey(ctx, defaultAPIKey)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
	defer cancel()

	return newClient(apiKey).ListClothes(runCtx)
}

// parseClothIDFromURI extracts the cloth ID from a URI of the form
// cloth:///{cloth_id}. It rejects URIs with additional path segments, query
// parameters, or fragments.
func parseClothIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, clothURIPrefix) {
		return "", fmt.Errorf("URI must start with %q", clothURIPrefix)
	}

	clothID := strings.TrimSpace(strings.TrimPrefix(uri, clothURIPrefix))
	if clothID == "" {
		return "", fmt.Errorf("cloth ID is required in URI")
	}
	if clothID == "list" {
		return "", fmt.Errorf("cloth:///list is the catalog resource, not a cloth ID")
	}
	if strings.ContainsAny(clothID, "/?#") {
		return "", fmt.Errorf("URI must not contain path segments, query parameters, or fragments after cloth ID")
	}
	return clothID, nil
}
