package transport

import (
	"net/http"
)

// Header names used by the Appwrite REST API.
const (
	HeaderProject = "X-Appwrite-Project"
	HeaderKey     = "X-Appwrite-Key"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, secret string)
}

// NoAuth implements no authentication. Used for public image downloads.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, secret string) {
	req.Header.Set("Authorization", "Bearer "+secret)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, secret string) {
	req.Header.Set(a.Header, secret)
}

// QueryAuth implements secret as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, secret string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, secret)
	req.URL.RawQuery = query.Encode()
}

// ProjectAuth authenticates a server-side Appwrite request: the project
// identifier travels in one header and the API key in another.
type ProjectAuth struct {
	ProjectID string
}

// Apply implements the Authenticator interface for ProjectAuth.
func (a *ProjectAuth) Apply(req *http.Request, secret string) {
	if a.ProjectID != "" {
		req.Header.Set(HeaderProject, a.ProjectID)
	}
	if secret != "" {
		req.Header.Set(HeaderKey, secret)
	}
}
