package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ranayash24/formbricks/internal/config"
	"github.com/ranayash24/formbricks/internal/credentials"
)

const defaultBaseURL = "http://localhost:8080/v1"

// Client talks to the formbricks API on behalf of the CLI.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
}

// NewClient creates a new API client. The base URL comes from
// FORMBRICKS_API_URL, then the CLI config, then the local default; the API
// key comes from the credential store.
func NewClient() *Client {
	baseURL := os.Getenv("FORMBRICKS_API_URL")
	if baseURL == "" {
		if cfg, err := config.LoadConfig(); err == nil && cfg.APIURL != "" {
			baseURL = cfg.APIURL
		}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	apiKey, _ := credentials.LoadAPIKey()

	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response body
func (c *Client) makeRequest(method, endpoint string, body interface{}) ([]byte, error) {
	url := c.BaseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// parseAPIError extracts the server's error message when it sent one.
func parseAPIError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("API error (status %d): %s", status, payload.Error)
	}
	return fmt.Errorf("API error (status %d): %s", status, string(body))
}
