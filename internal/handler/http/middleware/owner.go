package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/scanpoint/attend-backend-go/internal/handler/http/response"
)

// OwnerOnly restricts mode control, manual corrections and enrollment
// to the shop owner role carried in the access token.
func OwnerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "owner" {
			response.Forbidden(w, "Owner privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
