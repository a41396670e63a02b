package middleware

import (
	"net/http"

	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the ADMIN role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := UserRole(r.Context())
		if err != nil || role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireCaregiver requires the CAREGIVER role
func RequireCaregiver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := UserRole(r.Context())
		if err != nil || role != user.RoleCaregiver {
			response.HandleError(w, user.ErrCaregiverAccessOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
