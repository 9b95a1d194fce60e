package middleware

import (
	"net/http"

	context "skyward-mro/shopfloor/internal/auth"
	"skyward-mro/shopfloor/internal/constants"
)

// IsInspectorMiddleware admits inspectors and managers. Analytics and
// personnel reports are visible to both dashboards.
func IsInspectorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := context.GetUserClaims(r.Context())

			if claims != nil && (claims.Role() == constants.RoleInspector || claims.Role() == constants.RoleManager) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Unauthorized. Need inspector perms", http.StatusUnauthorized)
		})
	}
}
