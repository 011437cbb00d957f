package handlers

import (
	"net/http"

	"github.com/ndenisov/authd/internal/handlers/render"
	"github.com/ndenisov/authd/internal/handlers/userctx"
)

// handleMe returns the identity behind the access token
// The auth middleware has already verified the token and re-resolved
// the user against the store, so the context user is fresh
func handleMe() http.Handler {
	type response struct {
		User userResponse `json:"user"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())
		render.JSON(w, response{User: userResponse{ID: user.ID, Email: user.Email}})
	})
}
