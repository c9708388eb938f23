package centcom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBans = `[{"id":42,"sourceName":"Example Station","sourceRoleplayLevel":"Medium","type":"Server","cKey":"bob","bannedOn":"2021-06-01T10:00:00Z","bannedBy":"admin","reason":"griefing","expires":null,"unbannedBy":null,"jobs":null,"banAttributes":["BeeBan"]},{"id":43,"sourceName":"Other","sourceRoleplayLevel":"High","type":"Job","cKey":"bob","bannedOn":"2021-07-01T10:00:00Z","bannedBy":"admin2","reason":"bad security","expires":"2021-08-01T10:00:00Z","unbannedBy":null,"jobs":["Security Officer"],"banAttributes":[]}]`

func newTestClient(t *testing.T, statusCode int, body string) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewClient(&Config{BaseURL: server.URL})
}

func TestNewClient(t *testing.T) {
	client := NewClient(nil)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)

	client = NewClient(&Config{BaseURL: "https://centcom.example.com/", UserAgent: "ua"})
	assert.Equal(t, "https://centcom.example.com", client.baseURL)
	assert.Equal(t, "ua", client.userAgent)
}

func TestClient_SearchURL(t *testing.T) {
	client := NewClient(nil)

	assert.Equal(t, "https://centcom.melonmesa.com/ban/search/bob", client.SearchURL("bob"))
	assert.Equal(t, "https://centcom.melonmesa.com/ban/search/some%20guy", client.SearchURL("some guy"))
}

func TestClient_BanSearch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		pretty     bool
		want       string
		wantErr    error
	}{
		{
			name:       "pretty prints with four spaces",
			statusCode: http.StatusOK,
			body:       `[{"id":1,"cKey":"bob"}]`,
			pretty:     true,
			want:       "[\n    {\n        \"id\": 1,\n        \"cKey\": \"bob\"\n    }\n]",
		},
		{
			name:       "pretty keeps key order",
			statusCode: http.StatusOK,
			body:       `{"z":1,"a":2}`,
			pretty:     true,
			want:       "{\n    \"z\": 1,\n    \"a\": 2\n}",
		},
		{
			name:       "raw body is unmodified",
			statusCode: http.StatusOK,
			body:       "[ {\"id\":1} ]\n",
			pretty:     false,
			want:       "[ {\"id\":1} ]\n",
		},
		{
			name:       "empty result",
			statusCode: http.StatusOK,
			body:       "[]",
			pretty:     true,
			want:       "[]",
		},
		{
			name:       "invalid json",
			statusCode: http.StatusOK,
			body:       "<html>oops</html>",
			pretty:     true,
			wantErr:    ErrInvalidResponse,
		},
		{
			name:       "invalid json raw",
			statusCode: http.StatusOK,
			body:       "{\"id\":",
			pretty:     false,
			wantErr:    ErrInvalidResponse,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       "{}",
			pretty:     true,
			wantErr:    ErrNetworkUnavailable,
		},
		{
			name:       "empty body",
			statusCode: http.StatusOK,
			body:       "",
			pretty:     true,
			wantErr:    ErrNetworkUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.statusCode, tt.body)

			got, err := client.BanSearch(context.Background(), "bob", tt.pretty)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_BanSearch_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ban/search/some guy", r.URL.Path)
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	got, err := client.BanSearch(context.Background(), "some guy", false)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestClient_BanSearch_FailingEndpoint(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewClient(&Config{BaseURL: baseURL, Timeout: time.Second})

	assert.NotPanics(t, func() {
		_, err := client.BanSearch(context.Background(), "bob", true)
		assert.ErrorIs(t, err, ErrNetworkUnavailable)
	})
}

func TestClient_BanSearch_StatusError(t *testing.T) {
	client := newTestClient(t, http.StatusTooManyRequests, "slow down")

	_, err := client.BanSearch(context.Background(), "bob", false)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
}

func TestClient_BanSearch_EmptyCkey(t *testing.T) {
	client := NewClient(nil)

	_, err := client.BanSearch(context.Background(), "", true)
	assert.ErrorIs(t, err, ErrInvalidCkey)
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, http.StatusOK, sampleBans)

	bans, err := client.Search(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, bans, 2)

	assert.Equal(t, int64(42), bans[0].ID)
	assert.Equal(t, "Example Station", bans[0].SourceName)
	assert.Equal(t, BanTypeServer, bans[0].Type)
	assert.Equal(t, "griefing", bans[0].Reason)
	assert.Nil(t, bans[0].Expires)
	assert.Equal(t, []string{"BeeBan"}, bans[0].BanAttributes)

	assert.Equal(t, BanTypeJob, bans[1].Type)
	assert.Equal(t, []string{"Security Officer"}, bans[1].Jobs)
	require.NotNil(t, bans[1].Expires)
}

func TestClient_Search_WrongShape(t *testing.T) {
	client := newTestClient(t, http.StatusOK, `{"error":"not a list"}`)

	_, err := client.Search(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
