package middleware

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrUnauthorized)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrUnauthorized)
				return
			}
			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.HandleError(w, user.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
