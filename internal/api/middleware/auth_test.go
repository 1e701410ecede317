package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbranch/crud-api/internal/service/auth"
)

type stubJWTService struct {
	validateErr error
}

func (s *stubJWTService) GenerateToken(_ context.Context, _ string) (string, error) {
	return "", errors.New("not used")
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &auth.Claims{Subject: "admin"}, nil
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantStatus  int
		wantNext    bool
	}{
		{
			name:       "valid bearer token passes through",
			header:     "Bearer good-token",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header is 401",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer scheme is 401",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header is 401",
			header:     "Bearer",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "expired token is 401",
			header:      "Bearer expired",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid token is 401",
			header:      "Bearer bad",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "unexpected validation failure is 500",
			header:      "Bearer odd",
			validateErr: errors.New("key store unavailable"),
			wantStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewAuthMiddleware(&stubJWTService{validateErr: tt.validateErr})

			var nextCalled bool
			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestNewAuthMiddleware_PanicsOnNilService(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewAuthMiddleware(nil)
	})
}
