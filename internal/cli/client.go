package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPError is an error-status response from the backend, carrying the
// human-readable detail it sent.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.Status, e.Detail)
}

// ConnectionError means the backend could not be reached at all.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: could not connect to the backend service at %s", e.Addr)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Client is a thin HTTP client for the backend. It never retries; errors
// are reported to the user as-is.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the backend at baseURL. The timeout must
// cover generation latency, which dominates query round-trips.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// QueryResult mirrors the backend's /query response.
type QueryResult struct {
	Answer   string   `json:"answer"`
	Contexts []string `json:"contexts"`
}

// Query posts a question and returns the grounded answer with its
// retrieved contexts.
func (c *Client) Query(query string) (*QueryResult, error) {
	body, err := json.Marshal(map[string]string{"user_query": query})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/query", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &ConnectionError{Addr: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readHTTPError(resp)
	}

	var result QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Health fetches /health and returns the raw document.
func (c *Client) Health() (map[string]interface{}, error) {
	return c.getJSON("/health")
}

// Collections fetches /collections and returns the raw document.
func (c *Client) Collections() (map[string]interface{}, error) {
	return c.getJSON("/collections")
}

func (c *Client) getJSON(path string) (map[string]interface{}, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, &ConnectionError{Addr: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readHTTPError(resp)
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return doc, nil
}

// readHTTPError extracts the backend's detail message from an error
// response, falling back to the raw body.
func readHTTPError(resp *http.Response) *HTTPError {
	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Detail string `json:"detail"`
	}
	detail := string(raw)
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	return &HTTPError{Status: resp.StatusCode, Detail: detail}
}
