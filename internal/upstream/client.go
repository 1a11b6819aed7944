package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds ordinary CRUD calls.
	DefaultTimeout = 10 * time.Second
	// ChatTimeout bounds AI response generation and PDF ingestion.
	ChatTimeout = 60 * time.Second
)

// Client handles communication with the upstream Jevi backend. All console
// traffic to the backend goes through here so that auth header attachment,
// logging and error classification live in one place.
type Client struct {
	baseURL       string
	defaultClient *http.Client
	chatClient    *http.Client // for chat and upload operations (60s)
}

// New creates a new upstream client. Zero timeouts fall back to the package
// defaults.
func New(baseURL string, timeout, chatTimeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if chatTimeout == 0 {
		chatTimeout = ChatTimeout
	}
	return &Client{
		baseURL: baseURL,
		defaultClient: &http.Client{
			Timeout: timeout,
		},
		chatClient: &http.Client{
			Timeout: chatTimeout,
		},
	}
}

// BaseURL returns the configured upstream origin.
func (c *Client) BaseURL() string { return c.baseURL }

// call issues a JSON request against the upstream and decodes the response
// body into out when it is non-nil. Failures come back as *APIError.
func (c *Client) call(ctx context.Context, hc *http.Client, method, path, token string, body, out any) error {
	logger := NewLogger(ctx)
	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.LogInfof("api_request", "method=%s path=%s", method, path)

	resp, err := hc.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.LogError("api_request", err)
		recordCall(duration, err)
		return &APIError{Message: err.Error(), kind: ErrUnreachable}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		recordCall(duration, err)
		return fmt.Errorf("read response: %w", err)
	}

	logger.LogInfof("api_response", "method=%s path=%s status=%d latency=%s",
		method, path, resp.StatusCode, duration)

	if resp.StatusCode >= 400 {
		logger.LogWarnf("api_response", "upstream returned status %d", resp.StatusCode)
		recordCall(duration, fmt.Errorf("status %d", resp.StatusCode))
		return newAPIError(resp.StatusCode, serverMessage(data))
	}
	recordCall(duration, nil)

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// serverMessage pulls the error text out of an upstream failure body. The
// backend answers with either {"error": "..."} or {"message": "..."}.
func serverMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return ""
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.call(ctx, c.defaultClient, http.MethodPost, "/login", "",
		LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "login failed"
		}
		return nil, newAPIError(http.StatusUnauthorized, msg)
	}
	return &out, nil
}

// Health probes the upstream liveness endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.call(ctx, c.defaultClient, http.MethodGet, "/health", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CORSTest hits the upstream CORS diagnostic endpoint.
func (c *Client) CORSTest(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.call(ctx, c.defaultClient, http.MethodGet, "/cors-test", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
