// Package report wraps the external form-fill service that stamps field
// values into the tax form PDFs. Widget mechanics live entirely on the other
// side of this client.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps interactions with the form-fill API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks if the remote fill service is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("form fill service returned status %d", resp.StatusCode)
	}
	return nil
}

type fillRequest struct {
	Form   string            `json:"form"`
	Fields map[string]string `json:"fields"`
}

// Fill posts the field assignments for a form template and returns the
// filled PDF bytes.
func (c *Client) Fill(ctx context.Context, form string, fields map[string]string) ([]byte, error) {
	body, err := json.Marshal(fillRequest{Form: form, Fields: fields})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/forms/fill", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fill failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
