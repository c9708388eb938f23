package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name           string
		connectTimeout time.Duration
		timeout        time.Duration
		wantTimeout    time.Duration
	}{
		{
			name:        "defaults",
			wantTimeout: DefaultTimeout,
		},
		{
			name:           "custom",
			connectTimeout: time.Second,
			timeout:        3 * time.Second,
			wantTimeout:    3 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.connectTimeout, tt.timeout)

			require.NotNil(t, client)
			assert.Equal(t, tt.wantTimeout, client.Timeout)

			transport, ok := client.Transport.(*http.Transport)
			require.True(t, ok)
			assert.NotNil(t, transport.DialContext)
		})
	}
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	resp, err := Get(context.Background(), NewClient(0, 0), server.URL, "test-agent", "application/json")
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
}

func TestGet_DefaultUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Accept"))
	}))
	defer server.Close()

	resp, err := Get(context.Background(), NewClient(0, 0), server.URL, "", "")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Empty(t, resp.Body)
}

func TestGet_NonSuccessIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer server.Close()

	resp, err := Get(context.Background(), NewClient(0, 0), server.URL, "", "")
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(resp.Body), "nope"))
}

func TestGet_Errors(t *testing.T) {
	t.Run("bad url", func(t *testing.T) {
		_, err := Get(context.Background(), NewClient(0, 0), "://bad", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create request")
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Get(ctx, NewClient(0, 0), server.URL, "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("body is capped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", MaxBodySize+10)))
		}))
		defer server.Close()

		resp, err := Get(context.Background(), NewClient(0, 0), server.URL, "", "")
		require.NoError(t, err)
		assert.Len(t, resp.Body, MaxBodySize)
	})
}
