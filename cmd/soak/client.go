package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/service"
)

// Client drives one warehouse session over the REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(ctx context.Context, configID string) (*service.SessionInfo, error) {
	var body any
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}

	var session service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetState(ctx context.Context) (*engine.Snapshot, error) {
	var state engine.Snapshot
	if err := c.do(ctx, http.MethodGet, c.sessionPath("/state"), nil, &state); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &state, nil
}

type ResetResponse struct {
	Message string           `json:"message"`
	State   *engine.Snapshot `json:"state"`
}

func (c *Client) Reset(ctx context.Context) (*engine.Snapshot, error) {
	var resp ResetResponse
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/reset"), nil, &resp); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return resp.State, nil
}

func (c *Client) Enqueue(ctx context.Context, robotID int, cmd engine.Command, atFront bool) error {
	req := map[string]any{
		"kind":     cmd.Kind,
		"x":        cmd.X,
		"y":        cmd.Y,
		"boxes":    cmd.Boxes,
		"at_front": atFront,
	}
	path := c.sessionPath(fmt.Sprintf("/robots/%d/commands", robotID))
	if err := c.do(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	return nil
}

func (c *Client) Execute(ctx context.Context, robotID int) (*service.ActionResult, error) {
	var result service.ActionResult
	path := c.sessionPath(fmt.Sprintf("/robots/%d/execute", robotID))
	if err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	return &result, nil
}

func (c *Client) Undo(ctx context.Context) (*service.ActionResult, error) {
	var result service.ActionResult
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/undo"), nil, &result); err != nil {
		return nil, fmt.Errorf("undo: %w", err)
	}
	return &result, nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + c.sessionID + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s - %s", resp.Status, bytes.TrimSpace(data))
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
