package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/ndenisov/authd/internal/apperrors"
	"github.com/ndenisov/authd/internal/handlers/render"
	"github.com/ndenisov/authd/internal/handlers/userctx"
	"github.com/ndenisov/authd/internal/models"
)

type authService interface {
	UserFromRequest(ctx context.Context, r *http.Request) (models.User, error)
}

// Auth verifies the access token and puts the resolved user into the context
// A valid token whose subject no longer exists is 404, everything else is 401
func Auth(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := as.UserFromRequest(r.Context(), r)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					render.Errors(w, http.StatusNotFound, "User not found")
					return
				}
				render.Errors(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
