// Package jobs searches live job listings through the JSearch API.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://jsearch.p.rapidapi.com"
	rapidAPIHost    = "jsearch.p.rapidapi.com"
	defaultLocation = "new york"

	// maxListings caps how many listings a search returns.
	maxListings = 9
)

// Query describes one job search. JobTitle is required; Location falls back
// to the default when empty, and CountryCode is forwarded only when it is a
// two-letter code.
type Query struct {
	JobTitle    string `json:"jobTitle"`
	Location    string `json:"location,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Listing is one job result, passed through from the upstream API untouched.
type Listing = json.RawMessage

// ConfigError means the search cannot run because no API key is configured.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// APICallError represents an upstream request failure.
type APICallError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APICallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("job search failed: %s (status %d)", e.Message, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("job search failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job search failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError represents an upstream response that could not be decoded.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse job search response: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Client calls the JSearch API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a JSearch client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a job search and returns up to nine listings.
func (c *Client) Search(ctx context.Context, q Query) ([]Listing, error) {
	if c.apiKey == "" {
		return nil, &ConfigError{Message: "job search API key is not configured"}
	}
	if strings.TrimSpace(q.JobTitle) == "" {
		return nil, &ConfigError{Message: "job title is required"}
	}

	location := strings.TrimSpace(q.Location)
	if location == "" {
		location = defaultLocation
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s jobs in %s", q.JobTitle, location))
	params.Set("page", "1")
	params.Set("num_pages", "1")
	if code := strings.TrimSpace(q.CountryCode); len(code) == 2 {
		params.Set("country", strings.ToLower(code))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, &APICallError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", rapidAPIHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APICallError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APICallError{Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APICallError{StatusCode: resp.StatusCode, Message: "Failed to fetch jobs"}
	}

	var payload struct {
		Data []Listing `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}

	listings := payload.Data
	if len(listings) > maxListings {
		listings = listings[:maxListings]
	}
	return listings, nil
}
