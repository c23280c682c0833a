// Package operator resolves an optional operator identity from a bearer token.
//
// Turnout entry stays open to unauthenticated clients; when a token is
// present and valid its name claim is attached to the context so updates and
// audit logging can record who typed the number. Invalid or missing tokens
// never reject the request.
package operator

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"tallyboard/pkg/requestcontext"
)

const bearerPrefix = "Bearer "

// Middleware extracts the operator name from an HS256 bearer token signed with
// signingKey. With an empty signingKey the middleware is a passthrough.
func Middleware(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signingKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			name, err := parseOperator(raw, signingKey)
			if err != nil {
				if logger != nil {
					logger.WarnContext(r.Context(), "ignoring unparseable operator token", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestcontext.WithOperator(r.Context(), name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseOperator(raw, signingKey string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(signingKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		return name, nil
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	return sub, nil
}
