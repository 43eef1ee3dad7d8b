package middleware

import (
	"net/http"

	"p9e.in/fleetops/config"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/utils"
)

// RequirePermission checks that the authenticated user's role grants the
// required permission. Wildcard grants ("*", "order:*", "*:read") are honored.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// Super admins have all permissions
			if claims.Role == "super_admin" {
				next.ServeHTTP(w, r)
				return
			}

			var user models.User
			if err := config.DB.Preload("RoleModel.Permissions").First(&user, "id = ?", claims.UserID).Error; err != nil {
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			}

			for _, granted := range user.PermissionNames() {
				if utils.MatchesPermission(granted, permission) {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}

// RequireAnyPermission passes when the user holds at least one of the given
// permissions.
func RequireAnyPermission(permissions []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if claims.Role == "super_admin" {
				next.ServeHTTP(w, r)
				return
			}

			var user models.User
			if err := config.DB.Preload("RoleModel.Permissions").First(&user, "id = ?", claims.UserID).Error; err != nil {
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			}

			granted := user.PermissionNames()
			for _, required := range permissions {
				for _, g := range granted {
					if utils.MatchesPermission(g, required) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}
