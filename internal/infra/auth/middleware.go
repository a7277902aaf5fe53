package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xela07ax/netsec-analytics/internal/domain"
	"go.uber.org/zap"
)

// TokenValidator is satisfied by BaseValidator.
type TokenValidator interface {
	VerifyToken(tokenStr string) (*domain.ViewerClaims, error)
}

type ctxKey string

const claimsKey ctxKey = "viewer_claims"

// ClaimsFromContext returns the claims stored by the middleware, if any.
func ClaimsFromContext(ctx context.Context) (*domain.ViewerClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*domain.ViewerClaims)
	return c, ok
}

// NewMiddleware rejects requests without a valid token carrying scope.
func NewMiddleware(v TokenValidator, scope string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := v.VerifyToken(authHeader)
			if err != nil {
				logger.Warn("auth failure", zap.Error(err))
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if !claims.Allows(scope) {
				logger.Warn("scope denied",
					zap.String("user_id", claims.UserID),
					zap.String("scope", scope))
				writeError(w, http.StatusForbidden, "token does not grant "+scope)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
