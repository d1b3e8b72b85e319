package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// TokenSource yields the current bearer token, or "" when the client is
// not authenticated.
type TokenSource interface {
	Token() string
}

// Config represents the configuration for the storefront API client
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:3000/api
	BaseURL string

	// Timeout applies to every request
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	return nil
}

// Client issues authenticated requests against the storefront API. It
// attaches the bearer token when one is available and funnels 401
// responses into a single unauthorized hook.
type Client struct {
	config         Config
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient creates a new API client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// SetTokenSource wires the session that supplies bearer tokens.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHook registers the callback invoked once per 401
// response, regardless of which call triggered it.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) putJSON(ctx context.Context, path string, payload, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) patchJSON(ctx context.Context, path string, payload, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPatch, path, payload, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, method, path, nil, bytes.NewReader(body), "application/json", out)
}

// sendForm submits multipart form data, optionally attaching a local
// file under fileField. Used by the admin product/category writes that
// carry an image.
func (c *Client) sendForm(ctx context.Context, method, path string, fields map[string]string, fileField, filePath string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open upload file: %w", err)
		}
		defer file.Close()

		part, err := writer.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("failed to copy upload file: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form body: %w", err)
	}

	return c.do(ctx, method, path, nil, &buf, writer.FormDataContentType(), out)
}

// do performs one HTTP round trip against the API
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Attach bearer token when the session has one
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("API request failed", err, map[string]interface{}{
			"method": method,
			"path":   path,
		})
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(method, path, resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) handleErrorResponse(method, path string, status int, body []byte) error {
	apiErr := &APIError{Status: status}
	if len(body) > 0 {
		// Best effort: the server's error shape is optional
		_ = json.Unmarshal(body, apiErr)
	}

	switch status {
	case http.StatusUnauthorized:
		logger.Warn("Unauthorized response, invoking session teardown", map[string]interface{}{
			"method": method,
			"path":   path,
		})
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case http.StatusForbidden:
		logger.Warn("Access denied", map[string]interface{}{
			"method": method,
			"path":   path,
		})
	case http.StatusInternalServerError:
		logger.Error("Server error", apiErr, map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}

	return apiErr
}
