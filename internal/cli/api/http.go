package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthorized is matched by StatusError values carrying HTTP 401.
var ErrUnauthorized = errors.New("not logged in or session expired")

// Envelope is the common response wrapper of the NoteKeeper API.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// StatusError is returned when the server answers with a non-2xx status or success=false.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server status %d", e.Code)
	}
	return fmt.Sprintf("server status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// DoJSON sends a request with an optional JSON payload. If token is non-empty,
// it is passed as a Bearer credential. The response body is read and closed.
func DoJSON(ctx context.Context, method, url string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, b, nil
}

// DecodeEnvelope unwraps the response envelope into out (which may be nil).
func DecodeEnvelope(status int, body []byte, out any) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if status < 200 || status >= 300 {
			return &StatusError{Code: status, Message: strings.TrimSpace(string(body))}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if status < 200 || status >= 300 || !env.Success {
		return &StatusError{Code: status, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// Client talks to one NoteKeeper server on behalf of one session.
type Client struct {
	BaseURL string
	Token   string
}

// NewClient returns a client for baseURL ("http://host:port").
func NewClient(baseURL, token string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Token: token}
}

// Call performs method on path and decodes the envelope data into out.
func (c *Client) Call(ctx context.Context, method, path string, payload, out any) error {
	resp, body, err := DoJSON(ctx, method, c.BaseURL+path, payload, c.Token)
	if err != nil {
		return err
	}
	return DecodeEnvelope(resp.StatusCode, body, out)
}
