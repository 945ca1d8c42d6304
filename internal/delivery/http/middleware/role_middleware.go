package middleware

import (
	"net/http"

	"neptrip-backend/internal/domain/entity"
	"neptrip-backend/pkg/response"
)

// RequireRole creates a middleware that checks if the account has any of
// the allowed roles. Role is read from context (set by AuthMiddleware from
// JWT claims).
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireGuide is a convenience middleware for guide-only endpoints
func RequireGuide(next http.Handler) http.Handler {
	return RequireRole(entity.RoleGuide)(next)
}

// RequireUser is a convenience middleware for requester-only endpoints
func RequireUser(next http.Handler) http.Handler {
	return RequireRole(entity.RoleUser)(next)
}
