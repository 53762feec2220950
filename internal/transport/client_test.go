package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menuseed/pkg/errors"
)

func TestClientAppliesHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := New(&ProjectAuth{ProjectID: "proj"}, WithSecret("secret"), WithHeader("X-Custom", "1"))
	resp, err := c.Request(context.Background(), http.MethodPost, server.URL, strings.NewReader(`{}`), "")
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, DecodeResponse(resp, &out))
	assert.True(t, out.OK)

	assert.Equal(t, "proj", got.Get(HeaderProject))
	assert.Equal(t, "secret", got.Get(HeaderKey))
	assert.Equal(t, "1", got.Get("X-Custom"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestClientKeepsCallerContentType(t *testing.T) {
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(nil)
	resp, err := c.Request(context.Background(), http.MethodPost, server.URL, strings.NewReader("x"), "multipart/form-data; boundary=abc")
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
	assert.Equal(t, "multipart/form-data; boundary=abc", contentType)
}

func TestDecodeResponseError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantMsg   string
		wantType  string
		checkKind func(error) bool
	}{
		{
			name:      "appwrite json error",
			status:    http.StatusNotFound,
			body:      `{"message":"Collection not found","code":404,"type":"collection_not_found"}`,
			wantMsg:   "Collection not found",
			wantType:  "collection_not_found",
			checkKind: errors.IsNotFound,
		},
		{
			name:      "plain text",
			status:    http.StatusTooManyRequests,
			body:      "slow down",
			wantMsg:   "slow down",
			checkKind: errors.IsRateLimited,
		},
		{
			name:      "empty body",
			status:    http.StatusUnauthorized,
			wantMsg:   "Unauthorized",
			checkKind: errors.IsUnauthorized,
		},
		{
			name:      "server error",
			status:    http.StatusBadGateway,
			body:      "bad gateway",
			wantMsg:   "bad gateway",
			checkKind: errors.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := New(nil).Get(context.Background(), server.URL+"/v1/thing")
			require.NoError(t, err)

			err = DecodeResponse(resp, &struct{}{})
			require.Error(t, err)

			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantType, apiErr.Type)
			assert.Equal(t, "GET /v1/thing", apiErr.Endpoint)
			assert.True(t, tt.checkKind(err))
		})
	}
}

func TestReadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/small":
			_, _ = w.Write([]byte("12345"))
		case "/missing":
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(nil)
	ctx := context.Background()

	resp, err := c.Get(ctx, server.URL+"/small")
	require.NoError(t, err)
	body, err := ReadBody(resp, 10)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(body))

	resp, err = c.Get(ctx, server.URL+"/small")
	require.NoError(t, err)
	_, err = ReadBody(resp, 4)
	assert.True(t, errors.IsValidationError(err))

	resp, err = c.Get(ctx, server.URL+"/missing")
	require.NoError(t, err)
	_, err = ReadBody(resp, 10)
	assert.True(t, errors.IsNotFound(err))
}

func TestRequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(nil).Get(context.Background(), url)
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(nil).Get(ctx, url)
	assert.True(t, errors.IsCanceled(err))
}
