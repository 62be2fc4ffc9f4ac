// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"

	"github.com/tomtom215/folio/internal/auth"
	"github.com/tomtom215/folio/internal/authz"
	"github.com/tomtom215/folio/internal/logging"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authorizer decides whether a subject with roles may act on an object.
type Authorizer interface {
	EnforceWithRoles(subject string, roles []string, object, action string) (bool, error)
}

var (
	_ TokenVerifier = (*auth.JWTManager)(nil)
	_ Authorizer    = (*authz.Enforcer)(nil)
)

// RequireAuthorization admits requests carrying a valid bearer token whose
// subject or roles the policy allows on the request path. Without a token
// verifier and a policy every request is refused.
func (h *Handler) RequireAuthorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := NewResponseWriter(w, r)

		if h.tokens == nil || h.policy == nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="folio"`)
			rw.Unauthorized("admin authentication is not configured")
			return
		}

		token, err := auth.BearerToken(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="folio"`)
			rw.Unauthorized(err.Error())
			return
		}

		claims, err := h.tokens.ValidateToken(token)
		if err != nil {
			h.logger.Debug().Err(err).Msg("Token validation failed")
			w.Header().Set("WWW-Authenticate", `Bearer realm="folio", error="invalid_token"`)
			rw.Unauthorized("invalid token")
			return
		}

		action := authz.ActionForMethod(r.Method)
		allowed, err := h.policy.EnforceWithRoles(claims.Subject, claims.Roles, r.URL.Path, action)
		if err != nil {
			h.logger.Error().Err(err).Msg("Authorization error")
			rw.InternalError("authorization failed")
			return
		}
		if !allowed {
			h.logger.Warn().
				Str("subject", claims.Subject).
				Strs("roles", claims.Roles).
				Str("path", r.URL.Path).
				Str("action", action).
				Str("request_id", logging.RequestIDFromContext(r.Context())).
				Msg("Request denied by policy")
			rw.Forbidden("insufficient permissions")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}
