package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/agentstation/menuseed/pkg/errors"
	"github.com/agentstation/menuseed/pkg/logging"
)

// errorBody is the JSON shape of an Appwrite error response.
type errorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// DecodeResponse decodes a JSON response into the target structure.
// A nil target or an empty 2xx body is accepted without decoding.
func DecodeResponse(resp *http.Response, target any) error {
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if !Success(resp.StatusCode) {
		return ResponseError(resp, body)
	}

	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}

// ReadBody returns at most limit bytes of a successful response body.
// Bodies larger than limit are rejected rather than truncated.
func ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	defer closeBody(resp)

	if !Success(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, ResponseError(resp, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.WrapIO("read", endpoint(resp), err)
	}
	if int64(len(body)) > limit {
		return nil, errors.NewValidationError("body", len(body), fmt.Sprintf("response exceeds %d bytes", limit))
	}
	return body, nil
}

// ResponseError converts a failed response into an APIError, using the
// backend's JSON error message when the body carries one.
func ResponseError(resp *http.Response, body []byte) error {
	apiErr := &errors.APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint(resp),
		Message:    http.StatusText(resp.StatusCode),
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		apiErr.Message = eb.Message
		apiErr.Type = eb.Type
	} else if len(body) > 0 {
		apiErr.Message = string(body)
	}
	return apiErr
}

// Success reports whether status is a 2xx code.
func Success(status int) bool {
	return status >= 200 && status < 300
}

func endpoint(resp *http.Response) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.Method + " " + resp.Request.URL.Path
	}
	return "unknown"
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logging.Warn().Err(err).Str("endpoint", endpoint(resp)).Msg("Failed to close response body")
	}
}
