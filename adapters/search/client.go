// Package search implements the web-search capability against a
// Serper-style JSON search API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"namecheck/internal/errors"
	"namecheck/ports"
)

// Config holds search adapter settings.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Client calls the search API over plain HTTP+JSON.
type Client struct {
	config     Config
	httpClient *http.Client
}

// New creates a search client. Like the registrar, an unconfigured client is
// returned rather than an error so dependents can degrade at call time.
func New(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 6 * time.Second
	}
	if config.Endpoint == "" {
		config.Endpoint = "https://google.serper.dev/search"
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Configured reports whether a search API key is present.
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// Search returns up to limit organic results for the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]ports.SearchResult, error) {
	if !c.Configured() {
		return nil, errors.NotConfigured("search API")
	}
	if limit <= 0 {
		limit = 10
	}

	reqBody := struct {
		Q   string `json:"q"`
		Num int    `json:"num"`
	}{Q: query, Num: limit}

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.config.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("search", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.RateLimited("search API")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, errors.ExternalServiceError("search",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var parsed struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.ExternalServiceError("search", fmt.Errorf("parse response: %w", err))
	}

	results := make([]ports.SearchResult, 0, len(parsed.Organic))
	for _, o := range parsed.Organic {
		results = append(results, ports.SearchResult{
			Title:   o.Title,
			URL:     o.Link,
			Snippet: o.Snippet,
		})
		if len(results) >= limit {
			break
		}
	}

	log.Printf("[Search] %q returned %d organic results in %v", query, len(results), time.Since(start))
	return results, nil
}
