package transport

import (
	"net/http"
	"net/url"
	"testing"
)

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

// TestBearerAuth tests Bearer token authentication.
func TestBearerAuth(t *testing.T) {
	auth := &BearerAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if got := req.Header.Get("Authorization"); got != "Bearer test-api-key" {
		t.Errorf("Expected Authorization header 'Bearer test-api-key', got '%s'", got)
	}
}

// TestHeaderAuth tests custom header authentication.
func TestHeaderAuth(t *testing.T) {
	auth := &HeaderAuth{Header: "x-api-key"}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if got := req.Header.Get("x-api-key"); got != "test-api-key" {
		t.Errorf("Expected x-api-key header 'test-api-key', got '%s'", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header")
	}
}

// TestQueryAuth tests query parameter authentication.
func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "key"}

	reqURL, _ := url.Parse("https://example.com/v1/files?limit=10")
	req := &http.Request{URL: reqURL, Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if req.URL.Query().Get("key") != "test-api-key" {
		t.Errorf("Expected query param 'key=test-api-key', got '%s'", req.URL.RawQuery)
	}
	if req.URL.Query().Get("limit") != "10" {
		t.Errorf("Existing query params should be preserved, got '%s'", req.URL.RawQuery)
	}

	// Nil URL must not panic
	(&QueryAuth{Param: "key"}).Apply(&http.Request{Header: make(http.Header)}, "x")
}

// TestProjectAuth tests Appwrite project and key headers.
func TestProjectAuth(t *testing.T) {
	tests := []struct {
		name        string
		projectID   string
		secret      string
		wantProject string
		wantKey     string
	}{
		{"both", "proj", "key", "proj", "key"},
		{"no key", "proj", "", "proj", ""},
		{"no project", "", "key", "", "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{Header: make(http.Header)}
			(&ProjectAuth{ProjectID: tt.projectID}).Apply(req, tt.secret)

			if got := req.Header.Get(HeaderProject); got != tt.wantProject {
				t.Errorf("Expected %s '%s', got '%s'", HeaderProject, tt.wantProject, got)
			}
			if got := req.Header.Get(HeaderKey); got != tt.wantKey {
				t.Errorf("Expected %s '%s', got '%s'", HeaderKey, tt.wantKey, got)
			}
		})
	}
}
