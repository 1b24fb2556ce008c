package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/adamatova/community-api/internal/ports/secondary"
)

type ctxKey int

const identityKey ctxKey = iota

// withIdentity resolves the Bearer token into an Identity and stores it in
// the request context. Requests without a token pass through anonymous; the
// services reject mutations from empty participant ids.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := h.auth.Verify(token)
		if err != nil {
			h.writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin lets the request through only when the caller's login email is
// on the administrator allow-list.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := identityFrom(r)
		if identity == nil {
			h.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ok, err := h.participants.IsAdministrator(r.Context(), identity.Email)
		if err != nil {
			h.handleError(w, err)
			return
		}
		if !ok {
			h.writeError(w, http.StatusForbidden, "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(r *http.Request) *secondary.Identity {
	identity, _ := r.Context().Value(identityKey).(*secondary.Identity)
	return identity
}

// participantID returns the caller's id, or "" for anonymous requests.
func participantID(r *http.Request) string {
	if identity := identityFrom(r); identity != nil {
		return identity.ID
	}
	return ""
}
