// Package middleware carries the request-scoped session and level gate
// checks shared by the API handlers.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/gate"
	"github.com/newthinker/stratix/internal/metrics"
	"github.com/newthinker/stratix/internal/profile"
)

type contextKey string

const (
	profileKey contextKey = "profile"
	tokenKey   contextKey = "token"
)

// Token extracts the bearer token from a request, or "".
func Token(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	// The websocket client cannot set headers, so the token may ride
	// in the query string.
	return r.URL.Query().Get("token")
}

// SessionAuth resolves the bearer token to a profile and stores both in
// the request context. Requests without a valid session get 401.
func SessionAuth(profiles *profile.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := Token(r)
			if token == "" {
				response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
				return
			}

			p, err := profiles.Get(r.Context(), token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, err)
				return
			}

			ctx := context.WithValue(r.Context(), profileKey, p)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLevel refuses requests whose profile sits below minLevel.
// Runs inside SessionAuth.
func RequireLevel(minLevel int, feature string, reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := ProfileFrom(r.Context())
			if !ok {
				response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
				return
			}
			if !gate.Allowed(&p, minLevel) {
				if reg != nil {
					reg.RecordGateDenial(feature)
				}
				response.Denied(w, gate.DenialMessage(&p, minLevel))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ProfileFrom returns the session profile placed by SessionAuth.
func ProfileFrom(ctx context.Context) (profile.Profile, bool) {
	p, ok := ctx.Value(profileKey).(profile.Profile)
	return p, ok
}

// TokenFrom returns the session token placed by SessionAuth.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
