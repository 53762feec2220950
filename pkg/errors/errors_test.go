package errors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/menuseed/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "category",
			ID:       "pizza",
		}
		assert.Equal(t, "category with ID pizza not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("customization", "extra-cheese")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("menu[0].category_name", "", "cannot be empty")
		assert.Equal(t, "validation failed for field menu[0].category_name: cannot be empty", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "dataset is empty"}
		assert.Equal(t, "validation failed: dataset is empty", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"unauthorized", 401, pkgerrors.ErrUnauthorized},
		{"forbidden", 403, pkgerrors.ErrUnauthorized},
		{"not found", 404, pkgerrors.ErrNotFound},
		{"conflict", 409, pkgerrors.ErrAlreadyExists},
		{"rate limited", 429, pkgerrors.ErrRateLimited},
		{"server error", 503, pkgerrors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("/databases/main/collections/menu/documents", tt.status, "boom")
			assert.True(t, errors.Is(err, tt.target))
			assert.Contains(t, err.Error(), "boom")
		})
	}

	t.Run("type is included", func(t *testing.T) {
		err := &pkgerrors.APIError{
			StatusCode: 404,
			Type:       "collection_not_found",
			Message:    "Collection with the requested ID could not be found.",
			Endpoint:   "/databases/main/collections/nope/documents",
		}
		assert.Contains(t, err.Error(), "collection_not_found")
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("bad request maps to nothing", func(t *testing.T) {
		err := pkgerrors.NewAPIError("/x", 400, "bad")
		assert.False(t, errors.Is(err, pkgerrors.ErrNotFound))
		assert.False(t, pkgerrors.IsUnavailable(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection reset")
		err := &pkgerrors.APIError{Endpoint: "/files", Message: "request failed", Err: base}
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("appwrite", "missing keys: appwrite.endpoint", nil)
	assert.Contains(t, err.Error(), "appwrite")
	assert.Contains(t, err.Error(), "appwrite.endpoint")
}

func TestResetError(t *testing.T) {
	base := pkgerrors.NewAPIError("/files/abc", 500, "internal")
	err := pkgerrors.NewResetError("menu", 3, base)
	assert.Contains(t, err.Error(), "menu")
	assert.Contains(t, err.Error(), "3 deletions")
	assert.True(t, pkgerrors.IsUnavailable(err))

	var apiErr *pkgerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.StatusCode)
}

func TestParseError(t *testing.T) {
	t.Run("with file and position", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "yaml", File: "menu.yaml", Line: 10, Column: 5, Message: "unexpected token"}
		assert.Contains(t, err.Error(), "menu.yaml:10:5")
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "json", Message: "syntax error"}
		assert.Equal(t, "json parse error: syntax error", err.Error())
	})

	t.Run("wrap", func(t *testing.T) {
		base := errors.New("EOF")
		wrapped := pkgerrors.WrapParse("yaml", "dataset.yaml", base)
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(wrapped, &parseErr))
		assert.Equal(t, "dataset.yaml", parseErr.File)
		assert.Equal(t, base, parseErr.Unwrap())
	})
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapValidation("field", nil))
	assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))
	assert.Nil(t, pkgerrors.WrapResource("create", "category", "x", nil))
	assert.Nil(t, pkgerrors.WrapParse("yaml", "file.yaml", nil))
	assert.Nil(t, pkgerrors.WrapCanceled(nil))

	err := pkgerrors.WrapResource("create", "category", "Pizza", errors.New("in use"))
	var resErr *pkgerrors.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "create", resErr.Operation)
	assert.Equal(t, "category", resErr.Resource)

	ioErr := pkgerrors.WrapIO("download", "https://example.com/a.png", errors.New("timeout"))
	assert.Contains(t, ioErr.Error(), "https://example.com/a.png")
}

func TestWrapCanceled(t *testing.T) {
	err := pkgerrors.WrapCanceled(context.Canceled)
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestErrorChaining(t *testing.T) {
	base := errors.New("connection refused")
	ioErr := pkgerrors.WrapIO("connect", "cloud.appwrite.io", base)
	apiErr := &pkgerrors.APIError{Endpoint: "/documents", Message: "failed to connect", Err: ioErr}
	resErr := pkgerrors.WrapResource("create", "menu item", "Margherita", apiErr)

	var target *pkgerrors.IOError
	require.True(t, errors.As(resErr, &target))
	assert.Equal(t, "connect", target.Operation)
	assert.True(t, errors.Is(resErr, base))
}
