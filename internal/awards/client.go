// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package awards calls the remote funding-awards lookup tool. The service
// answers with loosely structured text that the correlator parses; this
// package only moves bytes.
package awards

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/allocations-engine/internal/httputil"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

// toolPath is the PI lookup tool, relative to the service base URL.
const toolPath = "/tools/find_nsf_awards_by_pi"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// maxRetries bounds retries per lookup. A correlation issues one lookup per
// name variant and counts a failed one as skipped, so a struggling service
// costs seconds rather than minutes.
const maxRetries = 1

// ErrNotConfigured is returned by NewClient when no base URL is set.
var ErrNotConfigured = errors.New("awards service not configured")

// Client queries the awards service over HTTP.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	APIKey    string
	UserAgent string
}

// NewClient builds a Client from configuration.
func NewClient(cfg types.AwardsConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
	}, nil
}

// QueryAwardsByPersonName asks the service for awards whose PI matches name
// and returns the response text. Service-level failures reported inside the
// text (for example "service unavailable") are returned as text, not errors;
// the caller decides what they mean.
func (c *Client) QueryAwardsByPersonName(ctx context.Context, name string, limit int) (string, error) {
	body, err := json.Marshal(toolRequest{PIName: name, Limit: limit})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+toolPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, maxRetries)
	if err != nil {
		return "", fmt.Errorf("awards API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("awards API returned HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading awards response: %w", err)
	}
	return responseText(raw), nil
}

// responseText joins the text parts of a tool response. Bodies that are not
// a tool response are returned as-is.
func responseText(raw []byte) string {
	var tr toolResponse
	if err := json.Unmarshal(raw, &tr); err != nil || len(tr.Content) == 0 {
		return strings.TrimSpace(string(raw))
	}
	var parts []string
	for _, c := range tr.Content {
		if c.Type == "" || c.Type == "text" {
			parts = append(parts, c.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if tr.IsError && !strings.Contains(strings.ToLower(firstLine(text)), "error") {
		text = "error: " + text
	}
	return text
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type toolRequest struct {
	PIName string `json:"pi_name"`
	Limit  int    `json:"limit,omitempty"`
}

type toolResponse struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError"`
}

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
