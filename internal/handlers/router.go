package handlers

import (
	"net/http"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authHandler *AuthHandler,
	authMiddleware func(http.Handler) http.Handler,
	csrfMiddleware func(http.Handler) http.Handler,
	loggerMiddleware func(http.Handler) http.Handler,
) http.Handler {
	api := http.NewServeMux()

	api.Handle("POST /signup", http.HandlerFunc(authHandler.signup))
	api.Handle("POST /login", http.HandlerFunc(authHandler.login))
	api.Handle("POST /refresh", http.HandlerFunc(authHandler.refresh))
	api.Handle("POST /logout", http.HandlerFunc(authHandler.logout))
	api.Handle("GET /auth/me", authMiddleware(handleMe()))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return chain(root,
		loggerMiddleware,
		csrfMiddleware,
	)
}
