package middleware

import (
	"net/http"

	"devicelicense/models"
)

// RequireRoles wraps a handler and allows access only if the authenticated admin's role is one of allowedRoles.
// Must run after AdminAuth.
func RequireRoles(allowedRoles ...string) func(http.HandlerFunc) http.HandlerFunc {
	set := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		set[r] = struct{}{}
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			admin, ok := AdminFromContext(r.Context())
			if !ok {
				unauthorized(w, "Unauthorized")
				return
			}
			if _, ok := set[admin.Role]; !ok {
				WriteJSON(w, http.StatusForbidden, models.CodedErrorResponse(models.CodeForbidden, "Forbidden: insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
