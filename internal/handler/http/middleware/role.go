package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// The role claim only short-circuits obvious misses. Services re-check the
// stored profile, so a stale claim never grants access.

// RequireOwner requires owner role
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, profile.ErrOwnerAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, profile.ErrOwnerAccessRequired)
			return
		}

		if role != string(profile.RoleOwner) {
			response.HandleError(w, profile.ErrOwnerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires manager or owner role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, profile.ErrManagerAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, profile.ErrManagerAccessRequired)
			return
		}

		role := profile.Role(roleStr)
		if role != profile.RoleManager && role != profile.RoleOwner {
			response.HandleError(w, profile.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
