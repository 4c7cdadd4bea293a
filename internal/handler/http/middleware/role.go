package middleware

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireApprover requires manager or admin role
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		if !user.CanResolveCorrections(user.Role(roleStr)) {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
