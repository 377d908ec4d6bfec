package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(jwtService jwt.Service, permission user.Permission) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
	r.Use(AuthRequired)
	r.With(RequirePermission(permission)).Get("/", func(w http.ResponseWriter, r *http.Request) {
		actor, err := user.ActorFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(actor.ID))
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour, time.Minute)
	router := newProtectedRouter(jwtService, user.PermissionLeaveViewOwn)

	hr := user.Actor{ID: "u-hr", Name: "Hana", Role: user.RoleHR, Department: user.DepartmentHR}
	access, _, err := jwtService.GenerateAccessToken(hr)
	require.NoError(t, err)
	sse, _, err := jwtService.GenerateSSEToken("u-hr")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"sse token", "Bearer " + sse, http.StatusUnauthorized},
		{"access token", "Bearer " + access, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "u-hr", rec.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour, time.Minute)
	router := newProtectedRouter(jwtService, user.PermissionBalanceViewAll)

	for role, want := range map[user.Role]int{
		user.RoleAdmin:    http.StatusOK,
		user.RoleHR:       http.StatusOK,
		user.RoleManager:  http.StatusForbidden,
		user.RoleEmployee: http.StatusForbidden,
	} {
		token, _, err := jwtService.GenerateAccessToken(user.Actor{ID: "u1", Name: "X", Role: role, Department: user.DepartmentSales})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, want, rec.Code, string(role))
	}
}
