package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts verified access tokens and stores the actor they
// describe in the request context. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		actor, err := jwt.ActorFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(user.WithActor(r.Context(), actor)))
	})
}
