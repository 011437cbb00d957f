package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndenisov/authd/internal/testutil"
	"github.com/ndenisov/authd/tests/integration"
)

const LoginURL = "/api/login"

func Test_Login(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("login ok", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			created, _, err := s.AuthService.SignUp(t.Context(), "a@b.com", "password123")
			require.NoError(t, err)

			data := `{"email": "a@b.com", "password": "password123"}`
			resp, err := http.Post(srvURL+LoginURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", string(body))

			var parsed struct {
				AccessToken string `json:"accessToken"`
				Message     string `json:"message"`
				User        struct {
					ID    string `json:"id"`
					Email string `json:"email"`
				} `json:"user"`
			}
			require.NoError(t, json.Unmarshal(body, &parsed))
			require.NotEmpty(t, parsed.AccessToken)
			require.Equal(t, "Login successful", parsed.Message)
			require.Equal(t, created.ID.String(), parsed.User.ID, "login should return the id signup created")
			require.Equal(t, "a@b.com", parsed.User.Email)

			require.Equal(t, 1, len(resp.Cookies()))
			cookie := resp.Cookies()[0]
			require.Equal(t, "refreshToken", cookie.Name)
			require.True(t, cookie.HttpOnly, "refresh cookie should be HttpOnly")
			require.Equal(t, "/", cookie.Path, "refresh cookie should be available on / path")
			require.Equal(t, http.SameSiteLaxMode, cookie.SameSite, "refresh cookie should be SameSite Lax")
			require.NotEmpty(t, cookie.Value, "refresh cookie should not be empty")
		})
	})

	t.Run("login wrong password", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			_, _, err := s.AuthService.SignUp(t.Context(), "a@b.com", "password123")
			require.NoError(t, err)

			data := `{"email": "a@b.com", "password": "wrongpass"}`
			resp, err := http.Post(srvURL+LoginURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			require.JSONEq(t, `{"errors": ["Invalid credentials"]}`, string(body))
			require.Empty(t, resp.Cookies(), "no cookies should be set on login error")
		})
	})

	t.Run("login unknown email answers exactly like wrong password", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			_, _, err := s.AuthService.SignUp(t.Context(), "a@b.com", "password123")
			require.NoError(t, err)

			data := `{"email": "nobody@b.com", "password": "password123"}`
			resp, err := http.Post(srvURL+LoginURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			require.JSONEq(t, `{"errors": ["Invalid credentials"]}`, string(body))
		})
	})

	t.Run("login validation", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			data := `{"email": "", "password": ""}`
			resp, err := http.Post(srvURL+LoginURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.JSONEq(t, `
				{
					"errors": ["Invalid email address", "Password must be at least 8 characters long"]
				}`, string(body))
		})
	})
}
