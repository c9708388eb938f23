package centcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/steviee/go-byond/internal/httpx"
)

const (
	// DefaultBaseURL is the default CentCom ban database URL.
	DefaultBaseURL = "https://centcom.melonmesa.com"

	// PrettyIndent is the indentation used for pretty-printed responses.
	PrettyIndent = "    "
)

// Client searches the CentCom ban aggregation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Config holds client configuration.
type Config struct {
	BaseURL        string
	ConnectTimeout time.Duration
	Timeout        time.Duration
	UserAgent      string

	// HTTPClient overrides the client built from the timeouts.
	HTTPClient *http.Client
}

// NewClient creates a new CentCom client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	// Fill in defaults
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.UserAgent == "" {
		config.UserAgent = httpx.UserAgent
	}

	// Zero timeouts fall back to the httpx defaults
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient(config.ConnectTimeout, config.Timeout)
	}

	slog.Debug("creating CentCom client", "base_url", config.BaseURL)

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		userAgent:  config.UserAgent,
	}
}

// SearchURL returns the ban search URL for ckey.
func (c *Client) SearchURL(ckey string) string {
	return fmt.Sprintf("%s/ban/search/%s", c.baseURL, url.PathEscape(ckey))
}

// BanSearch returns the ban search result for ckey as JSON text. With
// pretty set the body is re-indented with four spaces, keeping key order;
// otherwise the body is returned exactly as received.
func (c *Client) BanSearch(ctx context.Context, ckey string, pretty bool) (string, error) {
	body, err := c.fetch(ctx, ckey)
	if err != nil {
		return "", err
	}

	// Raw mode hands back the body untouched
	if !pretty {
		return string(body), nil
	}

	// json.Indent keeps key order and number text as sent
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", PrettyIndent); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return buf.String(), nil
}

// Search returns the decoded bans for ckey.
func (c *Client) Search(ctx context.Context, ckey string) ([]Ban, error) {
	body, err := c.fetch(ctx, ckey)
	if err != nil {
		return nil, err
	}

	// Decode into typed bans
	var bans []Ban
	if err := json.Unmarshal(body, &bans); err != nil {
		return nil, fmt.Errorf("%w: decode bans: %v", ErrInvalidResponse, err)
	}

	slog.Debug("centcom ban search decoded", "ckey", ckey, "bans", len(bans))

	return bans, nil
}

// fetch performs the request and checks that the body is valid JSON.
func (c *Client) fetch(ctx context.Context, ckey string) ([]byte, error) {
	// Validate ckey
	if ckey == "" {
		return nil, fmt.Errorf("%w: ckey cannot be empty", ErrInvalidCkey)
	}

	// Query CentCom, no caching and no retries
	resp, err := httpx.Get(ctx, c.httpClient, c.SearchURL(ckey), c.userAgent, "application/json")
	if err != nil {
		slog.Debug("centcom ban search failed", "ckey", ckey, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}

	// Handle response
	if !resp.OK() {
		slog.Debug("centcom ban search returned error status",
			"ckey", ckey,
			"status", resp.StatusCode)
		return nil, NewAPIError(resp.StatusCode, resp.Status)
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, fmt.Errorf("%w: empty body for %q", ErrNetworkUnavailable, ckey)
	}

	// Proxies and outages tend to answer with HTML
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrInvalidResponse)
	}

	return resp.Body, nil
}
