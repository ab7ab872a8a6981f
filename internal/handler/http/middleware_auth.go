package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/utils"
)

// auth is an HTTP middleware that enforces bearer session authentication.
//
// It extracts the token from the "Authorization" header, verifies it with
// [service.AuthService.Authenticate] (signature, expiry and the logout
// denylist) and stores the session and its user id in the request context
// via [utils.WithSession].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		raw, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeAuthError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		session, err := h.services.AuthService.Authenticate(r.Context(), raw)
		if err != nil {
			writeAuthError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSession(r.Context(), session)))
	})
}
