package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RevocationChecker reports whether the request token was revoked by a logout.
type RevocationChecker interface {
	TokenFromRequest(r *http.Request) string
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			revoked, err := revocations.IsTokenRevoked(r.Context(), revocations.TokenFromRequest(r))
			if err != nil {
				slog.Error("revocation check failed", "error", err)
				response.InternalServerError(w, "Unable to verify session")
				return
			}
			if revoked {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
