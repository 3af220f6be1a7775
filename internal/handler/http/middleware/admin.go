package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/buildforce/attendance-backend-go/internal/domain/auth"
	"github.com/buildforce/attendance-backend-go/internal/domain/user"
	"github.com/buildforce/attendance-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route to admin users.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
