package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/handler/http/response"
)

// RequirePermission checks the actor's role against the permission table.
// Must be mounted after AuthRequired.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := user.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !user.HasPermission(actor.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, actor.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
