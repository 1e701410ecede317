package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbranch/crud-api/internal/api/shared"
	"github.com/mbranch/crud-api/internal/platform/logger"
	"github.com/mbranch/crud-api/internal/service/auth"
)

// TokenRequest is the body of the token exchange endpoint.
type TokenRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// TokenResponse carries the issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthHandler exchanges the configured API key for a JWT access token.
type AuthHandler struct {
	keys   auth.APIKeyVerifier
	jwt    auth.JWTService
	forms  *FormProcessor
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	keys auth.APIKeyVerifier,
	jwtService auth.JWTService,
	forms *FormProcessor,
	log *slog.Logger,
) *AuthHandler {
	if keys == nil || jwtService == nil || forms == nil || log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependencies
		panic("AuthHandler requires all collaborators")
	}
	return &AuthHandler{
		keys:   keys,
		jwt:    jwtService,
		forms:  forms,
		logger: log.With(slog.String("component", "auth_handler")),
	}
}

// Token handles POST /auth/token requests.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := ValidateVerb(r.Method, []string{http.MethodPost}); err != nil {
		classified := Classify(err)
		shared.RespondWithError(w, r, classified.Status, classified.Message)
		return
	}

	var req TokenRequest
	if err := h.forms.Process(r, &req, nil); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			shared.RespondWithFieldErrors(w, r,
				http.StatusBadRequest, "validation failed", vErr.Fields)
			return
		}
		classified := Classify(err)
		shared.RespondWithErrorAndLog(w, r, classified.Status, classified.Message, err)
		return
	}

	if err := h.keys.Verify(req.APIKey); err != nil {
		log.Warn("rejected API key exchange")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid API key")
		return
	}

	token, err := h.jwt.GenerateToken(r.Context(), "admin")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}
