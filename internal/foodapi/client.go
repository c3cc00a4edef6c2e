// Package foodapi provides a client for the Open Food Facts database.
package foodapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	maxPageSize    = 50

	// Nutriment fields requested from the API; everything else is noise.
	productFields = "code,product_name,brands,serving_quantity,nutriments"
)

var (
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("foodapi: rate limited")
	// ErrNotFound indicates the barcode matched no product.
	ErrNotFound = errors.New("foodapi: product not found")
)

// Client queries the Open Food Facts public API. It needs no
// credentials; the database asks only for an identifying User-Agent.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a client against the public database.
func NewClient() *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		userAgent: "calbank/1.0",
		http:      &http.Client{},
	}
}

// Search returns products matching a free-text query, best match first.
// limit caps the result count; values outside 1..50 are clamped.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("foodapi: empty query")
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	params := url.Values{
		"search_terms":  {query},
		"search_simple": {"1"},
		"action":        {"process"},
		"json":          {"1"},
		"page_size":     {strconv.Itoa(limit)},
		"fields":        {productFields},
	}

	body, err := c.get(ctx, "/cgi/search.pl?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var raw SearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("foodapi: parsing search results: %w", err)
	}
	return raw.Products, nil
}

// Lookup returns the product for an exact barcode.
func (c *Client) Lookup(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, errors.New("foodapi: empty barcode")
	}

	body, err := c.get(ctx, "/api/v2/product/"+url.PathEscape(barcode)+".json?fields="+productFields)
	if err != nil {
		return nil, err
	}

	var raw productResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("foodapi: parsing product: %w", err)
	}
	if raw.Status != 1 || raw.Product == nil {
		return nil, ErrNotFound
	}
	return raw.Product, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("foodapi: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("foodapi: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusNotFound:
		return nil, ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("foodapi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("foodapi: reading response: %w", err)
	}
	return body, nil
}
