package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dkruglov/store-api/internal/auth"
)

// authErrorMessage is the fixed body returned for every guard rejection,
// whatever the underlying failure was.
const authErrorMessage = "Could not authorize. Did you include a valid Authorization header?"

// Authenticator validates a request and returns the caller identity.
type Authenticator interface {
	Authenticate(r *http.Request) (*auth.Identity, error)
}

// RequireAuth returns a middleware that authenticates requests with a
// bearer token. It is composed in front of protected handlers only;
// unprotected routes never pass through it. On success the resolved
// identity is stored in the request context.
func RequireAuth(authenticator Authenticator, logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authenticator.Authenticate(r)
			if err != nil {
				logger.Warn("authentication failed",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeAuthError(w)
				return
			}

			logger.Debug("authentication successful",
				zap.String("username", identity.Username),
				zap.Int64("user_id", identity.UserID),
				zap.String("path", r.URL.Path),
			)

			ctx := auth.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authErrorResponse is the JSON error response for auth failures.
type authErrorResponse struct {
	Message string `json:"message"`
}

// writeAuthError writes the fixed HTTP 401 response.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	w.WriteHeader(http.StatusUnauthorized)

	resp := authErrorResponse{Message: authErrorMessage}
	_ = json.NewEncoder(w).Encode(resp)
}
