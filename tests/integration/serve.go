package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/ndenisov/authd/internal/handlers"
	"github.com/ndenisov/authd/internal/handlers/middleware"
	"github.com/ndenisov/authd/internal/logger"
	"github.com/ndenisov/authd/internal/repository/postgres"
	"github.com/ndenisov/authd/internal/service/auth"
	"github.com/ndenisov/authd/internal/service/auth/tokenmanager"
	"github.com/ndenisov/authd/internal/testutil"
)

type Services struct {
	AuthService *auth.AuthService
	Tx          pgx.Tx
}

// RunTx runs the full http stack inside a db transaction and rolls it
// back when the test stops, so the database remains untouched
func RunTx(dbpool *pgxpool.Pool, t *testing.T, fn func(srvURL string, s Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		userRepo := &postgres.UserRepo{DB: tx}

		tokenManager, err := tokenmanager.New(tokenmanager.Config{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
		})
		require.NoError(t, err, "token manager should be created without errors")

		authService, err := auth.NewService(auth.Config{}, tokenManager, userRepo)
		require.NoError(t, err, "auth service starting error")

		router := handlers.NewRouter(
			handlers.NewAuth(authService, logger.NewNoOp()),
			middleware.Auth(authService),
			middleware.CSRF(),
			middleware.Logger(logger.NewNoOp()),
		)

		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(srv.URL, Services{AuthService: authService, Tx: tx})
	})
}
