package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/crud-api/internal/store"
)

// codedError is a test error carrying its own HTTP status.
type codedError struct {
	code int
}

func (e *codedError) Error() string   { return "coded error" }
func (e *codedError) StatusCode() int { return e.code }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "pre-classified error passes through",
			err:         NewError(http.StatusConflict, "already exists", nil),
			wantStatus:  http.StatusConflict,
			wantMessage: "already exists",
		},
		{
			name:        "wrapped pre-classified error passes through",
			err:         fmt.Errorf("handler: %w", NewError(http.StatusTeapot, "teapot", nil)),
			wantStatus:  http.StatusTeapot,
			wantMessage: "teapot",
		},
		{
			name:        "not found maps to 404",
			err:         store.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "resource not found",
		},
		{
			name:        "wrapped entity not found maps to 404",
			err:         fmt.Errorf("lookup: %w", store.ErrContactNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "resource not found",
		},
		{
			name:        "non-unique result maps to 500",
			err:         fmt.Errorf("%w: contact abc", store.ErrNotUnique),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "an unexpected error occurred",
		},
		{
			name:       "status coder with non-zero code is honored",
			err:        &codedError{code: http.StatusUnprocessableEntity},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "status coder with zero code falls back to 400",
			err:         &codedError{code: 0},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "bad request",
		},
		{
			name:        "unknown error defaults to 400",
			err:         errors.New("something else"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "bad request",
		},
		{
			name:        "nil error reports as 500",
			err:         nil,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "an unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got.Message)
			}
		})
	}
}

func TestClassify_NotFoundBeatsStatusCoder(t *testing.T) {
	t.Parallel()

	// An error that is both a not-found and carries its own code: the
	// store classification wins because it runs first.
	err := fmt.Errorf("%w: %w", store.ErrNotFound, &codedError{code: http.StatusConflict})

	got := Classify(err)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := NewError(http.StatusBadRequest, "bad", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad")
	assert.Contains(t, err.Error(), "root cause")
}
