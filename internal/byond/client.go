package byond

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/steviee/go-byond/internal/httpx"
)

// DefaultBaseURL is the default BYOND website base URL.
const DefaultBaseURL = "http://www.byond.com"

// Client fetches and parses BYOND members directory pages.
// It holds no mutable state and is safe for concurrent use.
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

// NewClient creates a new members directory client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	// Fill in defaults
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = httpx.DefaultConnectTimeout
	}

	if config.Timeout == 0 {
		config.Timeout = httpx.DefaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = httpx.UserAgent
	}

	// Tests inject their own client; everyone else gets the timeout policy
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient(config.ConnectTimeout, config.Timeout)
	}

	slog.Debug("creating BYOND members client",
		"base_url", config.BaseURL,
		"connect_timeout", config.ConnectTimeout,
		"timeout", config.Timeout)

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		userAgent:  config.UserAgent,
	}
}

// ProfilePageURL returns the plain-text members directory URL for ckey.
func (c *Client) ProfilePageURL(ckey string) string {
	return fmt.Sprintf("%s/members/%s?format=text", c.baseURL, url.PathEscape(ckey))
}

// FetchProfilePage retrieves the plain-text profile page for ckey.
// Transport failures, non-2xx statuses and empty bodies all report
// ErrNetworkUnavailable.
func (c *Client) FetchProfilePage(ctx context.Context, ckey string) (string, error) {
	// Validate ckey
	if ckey == "" {
		return "", fmt.Errorf("%w: ckey cannot be empty", ErrInvalidCkey)
	}

	// Query members directory, no caching and no retries
	resp, err := httpx.Get(ctx, c.httpClient, c.ProfilePageURL(ckey), c.userAgent, "text/plain")
	if err != nil {
		slog.Debug("byond profile fetch failed", "ckey", ckey, "error", err)
		return "", fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}

	// Handle response
	if !resp.OK() {
		// Unknown members come back as 404
		slog.Debug("byond profile fetch returned error status",
			"ckey", ckey,
			"status", resp.StatusCode)
		return "", NewAPIError(resp.StatusCode, resp.Status)
	}

	// An empty page is as useless as no page
	if len(resp.Body) == 0 {
		return "", fmt.Errorf("%w: empty body for %q", ErrNetworkUnavailable, ckey)
	}

	return string(resp.Body), nil
}

// IsValidCkey reports whether ckey has a members directory profile.
// A non-empty page is checked directly instead of fetching.
func (c *Client) IsValidCkey(ctx context.Context, ckey, page string) bool {
	// Reuse a page the caller already fetched
	if page == "" {
		var err error
		if page, err = c.FetchProfilePage(ctx, ckey); err != nil {
			// Unreachable counts as invalid
			return false
		}
	}
	return IsValidProfilePage(page)
}

// GetKey retrieves the "key" field for ckey.
func (c *Client) GetKey(ctx context.Context, ckey string) (string, error) {
	return c.getField(ctx, ckey, KeyToken)
}

// GetGender retrieves the "gender" field for ckey.
func (c *Client) GetGender(ctx context.Context, ckey string) (string, error) {
	return c.getField(ctx, ckey, GenderToken)
}

// GetJoined retrieves the "joined" field for ckey.
func (c *Client) GetJoined(ctx context.Context, ckey string) (string, error) {
	return c.getField(ctx, ckey, JoinedToken)
}

// GetDesc retrieves the "desc" field for ckey.
func (c *Client) GetDesc(ctx context.Context, ckey string) (string, error) {
	return c.getField(ctx, ckey, DescToken)
}

// GetHomePage retrieves the "home_page" field for ckey.
func (c *Client) GetHomePage(ctx context.Context, ckey string) (string, error) {
	return c.getField(ctx, ckey, HomePageToken)
}

// getField fetches the page and extracts one field from it.
func (c *Client) getField(ctx context.Context, ckey, token string) (string, error) {
	page, err := c.FetchProfilePage(ctx, ckey)
	if err != nil {
		return "", err
	}
	return Parse(page, token)
}

// GetProfile fetches the page for ckey once and parses every field.
// The page must be a valid profile page with a key; other fields are
// left empty when absent.
func (c *Client) GetProfile(ctx context.Context, ckey string) (*Profile, error) {
	page, err := c.FetchProfilePage(ctx, ckey)
	if err != nil {
		return nil, err
	}
	return ParseProfile(ckey, page)
}

// ParseProfile builds a Profile from an already fetched page.
func ParseProfile(ckey, page string) (*Profile, error) {
	if !IsValidProfilePage(page) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProfile, ckey)
	}

	// Key is mandatory; every real profile has one
	key, err := ParseKey(page)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}

	profile := &Profile{
		Ckey: ckey,
		Key:  key,
	}

	// Remaining fields are optional and left empty when absent
	optional := []struct {
		token string
		dst   *string
	}{
		{GenderToken, &profile.Gender},
		{JoinedToken, &profile.Joined},
		{DescToken, &profile.Desc},
		{HomePageToken, &profile.HomePage},
	}
	for _, f := range optional {
		value, err := Parse(page, f.token)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		*f.dst = value
	}

	slog.Debug("byond profile parsed", "ckey", ckey, "key", key)

	return profile, nil
}
