package middleware

import (
	"net/http"

	context "skyward-mro/shopfloor/internal/auth"
	"skyward-mro/shopfloor/internal/constants"
)

// IsManagerMiddleware guards write endpoints reserved for the manager
// dashboard (bulk operations, auto-assign, snapshot import).
func IsManagerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := context.GetUserClaims(r.Context())

			if claims != nil && claims.Role() == constants.RoleManager {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Unauthorized. Need manager perms", http.StatusUnauthorized)
		})
	}
}
