package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		category Category
		severity Severity
	}{
		{"config", ErrCodeConfigInvalid, CategoryConfig, SeverityFatal},
		{"search status", ErrCodeSearchStatus, CategoryNetwork, SeverityError},
		{"thumbnail", ErrCodeThumbnailRequest, CategoryNetwork, SeverityWarning},
		{"validation", ErrCodeInvalidInput, CategoryValidation, SeverityError},
		{"internal", ErrCodeInternal, CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestWrap_PreservesCauseChain(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeSearchRequest, cause)

	require.NotNil(t, err)
	assert.Equal(t, "connection refused", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestIs_MatchesByCode(t *testing.T) {
	a := New(ErrCodeSearchStatus, "status 500", nil)
	b := New(ErrCodeSearchStatus, "status 404", nil)
	c := New(ErrCodeThumbnailStatus, "status 500", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestIsWarning_ThumbnailErrorsAreWarnings(t *testing.T) {
	assert.True(t, IsWarning(ThumbnailError("fetch failed", nil)))
	assert.False(t, IsWarning(SearchError("fetch failed", nil)))
	assert.False(t, IsWarning(nil))
}

func TestWithDetail_Chains(t *testing.T) {
	err := SearchError("request failed", nil).
		WithDetail("status", "503").
		WithDetail("url", "/api/v1/users/search")

	assert.Equal(t, "503", err.Details["status"])
	assert.Equal(t, "/api/v1/users/search", err.Details["url"])
}

func TestFormatForUser_PlainErrorPassesThrough(t *testing.T) {
	err := fmt.Errorf("dial tcp: timeout")
	assert.Equal(t, "dial tcp: timeout", FormatForUser(err))
}

func TestFormatForUser_DetailsRenderInSortedKeyOrder(t *testing.T) {
	err := SearchError("user search failed", nil).
		WithDetail("status", "429").
		WithDetail("body", "TooManyRequests")

	want := "user search failed (body: TooManyRequests) (status: 429)"
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, FormatForUser(err))
	}
}

func TestFormatForCLI_IncludesCode(t *testing.T) {
	out := FormatForCLI(SearchError("request failed", nil))
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, ErrCodeSearchRequest)
}
