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

const SignupURL = "/api/signup"

func Test_Signup(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("signup ok", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			data := `{"email": "a@b.com", "password": "password123"}`
			resp, err := http.Post(srvURL+SignupURL, "application/json", strings.NewReader(data))
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
			require.NotEmpty(t, parsed.AccessToken, "access token should be returned in body")
			require.Equal(t, "User registered successfully", parsed.Message)
			require.NotEmpty(t, parsed.User.ID)
			require.Equal(t, "a@b.com", parsed.User.Email)

			require.Equal(t, 1, len(resp.Cookies()))
			cookie := resp.Cookies()[0]
			require.Equal(t, "refreshToken", cookie.Name)
			require.True(t, cookie.HttpOnly, "refresh cookie should be HttpOnly")
			require.NotEmpty(t, cookie.Value, "refresh cookie should not be empty")
		})
	})

	t.Run("signup duplicate email yields conflict", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			data := `{"email": "a@b.com", "password": "password123"}`
			resp, err := http.Post(srvURL+SignupURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			_ = resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			// Same email, different password: still a conflict
			data = `{"email": "a@b.com", "password": "anotherpass456"}`
			resp, err = http.Post(srvURL+SignupURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusConflict, resp.StatusCode)
			require.JSONEq(t, `{"errors": ["Email already in use"]}`, string(body))
		})
	})

	t.Run("signup empty fields reports both errors", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			data := `{"email": "", "password": ""}`
			resp, err := http.Post(srvURL+SignupURL, "application/json", strings.NewReader(data))
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
