package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ProjectInput is the create/update payload. The API key is carried on the
// way in only; list and get responses never include it.
type ProjectInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category,omitempty"`
	AIModel        string `json:"ai_model"`
	AIAPIKey       string `json:"ai_api_key"`
	AIDailyLimit   int    `json:"ai_daily_limit"`
	AIMonthlyLimit int    `json:"ai_monthly_limit"`
	WelcomeMessage string `json:"welcome_message,omitempty"`
}

// ListProjects fetches every project visible to the admin token. The
// backend has shipped two response shapes ({"projects": [...]} and a bare
// array), so both are accepted.
func (c *Client) ListProjects(ctx context.Context, token string) ([]Project, error) {
	var raw json.RawMessage
	if err := c.call(ctx, c.defaultClient, http.MethodGet, "/admin/projects", token, nil, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Projects []Project `json:"projects"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Projects != nil {
		return wrapped.Projects, nil
	}

	var bare []Project
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return bare, nil
}

// CreateProject creates a project and returns the backend's record.
func (c *Client) CreateProject(ctx context.Context, token string, in ProjectInput) (*Project, error) {
	var out struct {
		Project Project `json:"project"`
	}
	if err := c.call(ctx, c.defaultClient, http.MethodPost, "/admin/projects", token, in, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// UpdateProject replaces the mutable fields of a project.
func (c *Client) UpdateProject(ctx context.Context, token, projectID string, in ProjectInput) (*Project, error) {
	var out struct {
		Project Project `json:"project"`
	}
	if err := c.call(ctx, c.defaultClient, http.MethodPut, "/admin/projects/"+projectID, token, in, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// DeleteProject removes a project from the backend.
func (c *Client) DeleteProject(ctx context.Context, token, projectID string) error {
	return c.call(ctx, c.defaultClient, http.MethodDelete, "/admin/projects/"+projectID, token, nil, nil)
}

// ListUsers fetches the user collection.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.call(ctx, c.defaultClient, http.MethodGet, "/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// DeleteUser removes a user from the backend.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.call(ctx, c.defaultClient, http.MethodDelete, "/admin/users/"+userID, token, nil, nil)
}

// AdminChatHistory fetches a project's full conversation log across all
// widget sessions.
func (c *Client) AdminChatHistory(ctx context.Context, token, projectID string) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	path := "/admin/projects/" + projectID + "/chat-history"
	if err := c.call(ctx, c.defaultClient, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// DashboardStats fetches the aggregate counters for the dashboard cards.
func (c *Client) DashboardStats(ctx context.Context, token string) (*DashboardStats, error) {
	var out struct {
		Stats DashboardStats `json:"stats"`
	}
	if err := c.call(ctx, c.defaultClient, http.MethodGet, "/admin/dashboard", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// RealtimeStats fetches the live activity snapshot.
func (c *Client) RealtimeStats(ctx context.Context, token string) (*RealtimeStats, error) {
	var out RealtimeStats
	if err := c.call(ctx, c.defaultClient, http.MethodGet, "/admin/realtime-stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPDF sends one PDF to a project's knowledge base as a multipart form.
// One binary per call; multi-file flows loop and keep per-file status.
func (c *Client) UploadPDF(ctx context.Context, token, projectID, filename string, file io.Reader) error {
	logger := NewLogger(ctx)
	start := time.Now()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("pdf", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	path := "/admin/projects/" + projectID + "/upload-pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.LogInfof("upload_pdf", "project_id=%s file=%s bytes=%d", projectID, filename, buf.Len())

	resp, err := c.chatClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.LogError("upload_pdf", err)
		recordCall(duration, err)
		return &APIError{Message: err.Error(), kind: ErrUnreachable}
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		logger.LogWarnf("upload_pdf", "upstream returned status %d", resp.StatusCode)
		recordCall(duration, fmt.Errorf("status %d", resp.StatusCode))
		return newAPIError(resp.StatusCode, serverMessage(data))
	}
	recordCall(duration, nil)
	return nil
}
