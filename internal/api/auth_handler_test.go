package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/crud-api/internal/api/shared"
	"github.com/mbranch/crud-api/internal/service/auth"
)

type fakeKeyVerifier struct {
	accept string
}

func (f *fakeKeyVerifier) Verify(key string) error {
	if key == f.accept {
		return nil
	}
	return auth.ErrInvalidAPIKey
}

type fakeJWTService struct {
	token string
	err   error
}

func (f *fakeJWTService) GenerateToken(_ context.Context, _ string) (string, error) {
	return f.token, f.err
}

func (f *fakeJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	return nil, errors.New("not used")
}

func newTestAuthHandler(jwtErr error) *AuthHandler {
	return NewAuthHandler(
		&fakeKeyVerifier{accept: "valid-key"},
		&fakeJWTService{token: "signed.jwt.token", err: jwtErr},
		NewFormProcessor(slog.Default()),
		slog.Default(),
	)
}

func postToken(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Token(w, req)
	return w
}

func TestAuthHandler_Token_Success(t *testing.T) {
	t.Parallel()

	w := postToken(t, newTestAuthHandler(nil), `{"api_key": "valid-key"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

func TestAuthHandler_Token_RejectsWrongKey(t *testing.T) {
	t.Parallel()

	w := postToken(t, newTestAuthHandler(nil), `{"api_key": "wrong-key"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Token_MissingKeyIsValidationError(t *testing.T) {
	t.Parallel()

	w := postToken(t, newTestAuthHandler(nil), `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Fields)
	assert.Equal(t, "api_key", resp.Fields[0].Field)
}

func TestAuthHandler_Token_SigningFailureIs500(t *testing.T) {
	t.Parallel()

	w := postToken(t, newTestAuthHandler(errors.New("hmac broken")), `{"api_key": "valid-key"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Token_RejectsNonPOST(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/token", nil)
	w := httptest.NewRecorder()
	h.Token(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
