// Package httpx builds the HTTP client shared by the BYOND and CentCom
// clients and performs their single-shot GET requests.
package httpx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultConnectTimeout bounds dialing a connection.
	DefaultConnectTimeout = 2 * time.Second

	// DefaultTimeout bounds the whole request, including reading the body.
	DefaultTimeout = 5 * time.Second

	// UserAgent is the user agent string sent with requests.
	UserAgent = "go-byond/dev (https://github.com/steviee/go-byond)"

	// MaxBodySize caps how much of a response body is read.
	MaxBodySize = 4 << 20
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient returns an HTTP client with a dial timeout of connectTimeout and
// an overall request timeout of timeout. Zero values use the defaults.
func NewClient(connectTimeout, timeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{Timeout: connectTimeout}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = timeout

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Get issues a GET request to url and reads the body.
// The returned error covers transport failures only; callers inspect the
// status of a returned Response themselves.
func Get(ctx context.Context, client *http.Client, url, userAgent, accept string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if userAgent == "" {
		userAgent = UserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	slog.Debug("http request", "method", http.MethodGet, "url", url)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	slog.Debug("http response",
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(body))

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}
