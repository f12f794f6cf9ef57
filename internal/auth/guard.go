package auth

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "carcloud/pkg/errors"
	"carcloud/pkg/httputil"
	"carcloud/pkg/logger"
)

type claimsKey struct{}

func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(Claims)
	return claims, ok
}

// Guard enforces ownership-scoped access: the authenticated identity
// must equal the owner email named in the request path. It is applied
// only to the "my cars" and "my bookings" reads; creation and mutation
// routes are public, which is part of the current contract.
type Guard struct {
	sessions *SessionAuthenticator
	log      *logger.Logger
}

func NewGuard(sessions *SessionAuthenticator, log *logger.Logger) *Guard {
	return &Guard{
		sessions: sessions,
		log:      log,
	}
}

// RequireOwner wraps a route whose :param segment names the resource
// owner. Missing or invalid tokens are 401; a valid token for a
// different identity is 403. The two cases never overlap: identity
// comparison happens only after verification succeeds.
func (g *Guard) RequireOwner(param string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.Unauthorized("unauthorized access")); writeErr != nil {
				g.log.Error("failed to write error response", "guard", "RequireOwner", "error", writeErr)
			}
			return
		}

		claims, err := g.sessions.Verify(cookie.Value)
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				g.log.Error("failed to write error response", "guard", "RequireOwner", "error", writeErr)
			}
			return
		}

		// Case-sensitive exact match against the path identity.
		if claims.Email != ps.ByName(param) {
			g.log.Warn("Ownership check failed",
				"token_email", claims.Email,
				"path", r.URL.Path,
			)
			if writeErr := httputil.WriteError(w, apperrors.Forbidden("forbidden access!")); writeErr != nil {
				g.log.Error("failed to write error response", "guard", "RequireOwner", "error", writeErr)
			}
			return
		}

		next(w, r.WithContext(ContextWithClaims(r.Context(), claims)), ps)
	}
}
