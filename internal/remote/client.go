// Package remote downloads team workbooks over HTTP, including shared
// spreadsheet links that need rewriting to their xlsx export form.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// MaxWorkbookSize caps a download. Team workbooks are a few hundred KB.
const MaxWorkbookSize = 32 << 20

// Client fetches workbooks, optionally with a bearer token.
type Client struct {
	token string
	http  *http.Client
}

// NewClient returns a client that sends token (if non-empty) as a bearer token.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsURL reports whether s names an http(s) resource rather than a local path.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var sheetIDPattern = regexp.MustCompile(`^/spreadsheets/d/([A-Za-z0-9_-]+)`)

// ExportURL rewrites a Google Sheets edit or view link to its xlsx export link.
// Any other URL is returned unchanged.
func ExportURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host != "docs.google.com" {
		return raw
	}
	m := sheetIDPattern.FindStringSubmatch(u.Path)
	if m == nil || strings.HasSuffix(u.Path, "/export") {
		return raw
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=xlsx", m[1])
}

// Download GETs the workbook at rawURL and returns its bytes.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	target := ExportURL(rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("GET %s: HTTP %d (is the sheet shared, or TEAMSTATS_FETCH_TOKEN set?)", target, resp.StatusCode)
	default:
		return nil, fmt.Errorf("GET %s: HTTP %d", target, resp.StatusCode)
	}

	// Read one byte past the cap to detect oversize bodies.
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxWorkbookSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if len(data) > MaxWorkbookSize {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", target, MaxWorkbookSize)
	}
	return data, nil
}
