package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"

	apperrors "carcloud/pkg/errors"
	"carcloud/pkg/httputil"
	"carcloud/pkg/logger"
)

// TokenRequest is the POST /jwt payload. Only the email ends up in the
// token claims; anything else the client sends is ignored.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

type Handler struct {
	sessions   *SessionAuthenticator
	production bool
	validate   *validator.Validate
	log        *logger.Logger
}

func NewHandler(sessions *SessionAuthenticator, production bool, log *logger.Logger) *Handler {
	return &Handler{
		sessions:   sessions,
		production: production,
		validate:   validator.New(),
		log:        log,
	}
}

// IssueToken signs a session token for the posted identity and sets
// the cookie. There is no credential check: the upstream identity
// provider has already authenticated the user.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "IssueToken", "error", writeErr)
		}
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.Validation("A valid email is required", map[string]any{"error": err.Error()})); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "IssueToken", "error", writeErr)
		}
		return
	}

	token, err := h.sessions.Issue(req.Email)
	if err != nil {
		h.log.Error("Failed to issue session token", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to issue token", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "IssueToken", "error", writeErr)
		}
		return
	}

	SetSessionCookie(w, token, h.production)
	h.log.Info("Session token issued", "email", req.Email)

	if err := httputil.WriteOK(w); err != nil {
		h.log.Error("failed to write success response", "handler", "IssueToken", "error", err)
	}
}

// Logout clears the cookie. Purely client-side invalidation.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ClearSessionCookie(w, h.production)

	if err := httputil.WriteOK(w); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/jwt", h.IssueToken)
	router.POST("/logout", h.Logout)
}
