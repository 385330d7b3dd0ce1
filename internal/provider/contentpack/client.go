// Package contentpack downloads shared day/week content bundles over HTTP.
package contentpack

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/saadjs/bump-cli/internal/service"
)

const maxBundleBytes = 4 << 20

type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

// Fetch downloads a bundle and decodes it as JSON or YAML. The format comes
// from the response Content-Type, falling back to the URL extension.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*service.ContentBundle, []byte, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, nil, fmt.Errorf("invalid content url %q", rawURL)
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create content request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, text/yaml;q=0.8")
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute content request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read content response: %w", err)
	}
	if len(body) > maxBundleBytes {
		return nil, nil, fmt.Errorf("content bundle exceeds %d bytes", maxBundleBytes)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, body, fmt.Errorf("content request failed with status %d", resp.StatusCode)
	}

	bundle, err := service.ParseContentBundle(bundleName(resp.Header.Get("Content-Type"), u.Path), body)
	if err != nil {
		return nil, body, err
	}
	return bundle, body, nil
}

// bundleName maps the response to a file name ParseContentBundle understands.
func bundleName(contentType, urlPath string) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return "bundle.json"
	case strings.Contains(mediaType, "yaml"):
		return "bundle.yaml"
	}
	return path.Base(urlPath)
}
