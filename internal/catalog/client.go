package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/railparts-supply/railparts-backend/pkg/config"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
)

// Suggestion is the shape consumed from the external catalog's suggestion
// endpoint.
type Suggestion struct {
	OEMSku    string `json:"oemSku"`
	Name      string `json:"name"`
	ProductID string `json:"productId"`
}

// Product is the catalog's product listing shape, passed through untouched.
type Product struct {
	ProductID   string `json:"productId"`
	OEMSku      string `json:"oemSku"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	ImageID     string `json:"imageId,omitempty"`
}

// Category is a catalog category entry.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client performs read-only queries against the external product catalog API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient wires the catalog HTTP client.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	return &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Suggestions queries the catalog's search suggestion endpoint.
func (c *Client) Suggestions(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var suggestions []Suggestion
	if err := c.getJSON(ctx, "/suggestions", params, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Search queries the catalog's full-text product search.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) ([]Product, error) {
	params := url.Values{"q": {query}}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	var products []Product
	if err := c.getJSON(ctx, "/search", params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories lists the catalog's category tree.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog responded %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog response")
	}
	return nil
}
