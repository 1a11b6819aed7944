package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// GetProject fetches one project's public metadata. Works with or without a
// token so the embed widget can call it anonymously.
func (c *Client) GetProject(ctx context.Context, token, projectID string) (*Project, error) {
	var raw json.RawMessage
	if err := c.call(ctx, c.defaultClient, http.MethodGet, "/user/project/"+projectID, token, nil, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Project *Project `json:"project"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Project != nil {
		return wrapped.Project, nil
	}

	// Older backend builds answer with the bare project object.
	var bare Project
	if err := json.Unmarshal(raw, &bare); err != nil || bare.Name == "" {
		return nil, fmt.Errorf("decode project: unrecognized response shape")
	}
	return &bare, nil
}

// SendMessage posts one user message and waits for the AI response.
func (c *Client) SendMessage(ctx context.Context, token, projectID string, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	err := c.call(ctx, c.chatClient, http.MethodPost, "/user/chat/"+projectID+"/message", token, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatHistory fetches stored messages for a project, optionally scoped to a
// single widget session.
func (c *Client) ChatHistory(ctx context.Context, token, projectID, sessionID string) ([]Message, error) {
	path := "/user/chat/" + projectID + "/history"
	if sessionID != "" {
		path += "?session_id=" + url.QueryEscape(sessionID)
	}

	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.call(ctx, c.defaultClient, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}
