package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ndenisov/authd/internal/apperrors"
	"github.com/ndenisov/authd/internal/handlers/render"
	"github.com/ndenisov/authd/internal/logger"
	"github.com/ndenisov/authd/internal/models"
)

type authService interface {
	// Register user with email and password
	// Has to return apperrors.ErrEmailTaken if the email is registered already
	SignUp(ctx context.Context, email string, password string) (models.User, models.TokenPair, error)

	// Login user with email and password
	// Has to return apperrors.ErrInvalidCredentials for unknown email
	// and wrong password alike
	Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error)

	// Issue a new pair using a refresh token
	// Invalid or expired tokens: apperrors.ErrTokenInvalid / ErrTokenExpired
	// Token subject no longer in the store: apperrors.ErrUserNotFound
	Refresh(ctx context.Context, refresh string) (models.User, models.TokenPair, error)

	// Refresh cookie transport
	SetRefreshCookie(w http.ResponseWriter, refresh models.IssuedToken)
	ClearRefreshCookie(w http.ResponseWriter)
	ReadRefreshToken(r *http.Request) (string, error)
}

// Request body shared by signup and login
// Both endpoints validate the same way so failed logins and signups
// report the same field messages
type credentialsRequest struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=8"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type AuthHandler struct {
	auth   authService
	logger logger.Logger
}

func NewAuth(auth authService, logger logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	type signupSuccessResponse struct {
		AccessToken string       `json:"accessToken"`
		Message     string       `json:"message"`
		User        userResponse `json:"user"`
	}

	data, err := render.BindAndValidate[credentialsRequest](w, r)
	if err != nil {
		return
	}

	user, pair, err := h.auth.SignUp(r.Context(), data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailTaken):
			render.Errors(w, http.StatusConflict, "Email already in use")
		default:
			h.logger.Error("signup failed", "error", err.Error())
			render.InternalError(w)
		}
		return
	}

	h.auth.SetRefreshCookie(w, pair.Refresh)
	render.JSON(w, signupSuccessResponse{
		AccessToken: pair.Access.Value,
		Message:     "User registered successfully",
		User:        userResponse{ID: user.ID, Email: user.Email},
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	type loginSuccessResponse struct {
		AccessToken string       `json:"accessToken"`
		Message     string       `json:"message"`
		User        userResponse `json:"user"`
	}

	data, err := render.BindAndValidate[credentialsRequest](w, r)
	if err != nil {
		return
	}

	user, pair, err := h.auth.Login(r.Context(), data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			render.Errors(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.logger.Error("login failed", "error", err.Error())
			render.InternalError(w)
		}
		return
	}

	h.auth.SetRefreshCookie(w, pair.Refresh)
	render.JSON(w, loginSuccessResponse{
		AccessToken: pair.Access.Value,
		Message:     "Login successful",
		User:        userResponse{ID: user.ID, Email: user.Email},
	})
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	type refreshSuccessResponse struct {
		AccessToken string `json:"accessToken"`
	}

	refresh, err := h.auth.ReadRefreshToken(r)
	if err != nil {
		render.Errors(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	_, pair, err := h.auth.Refresh(r.Context(), refresh)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.Errors(w, http.StatusNotFound, "User not found")
		case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenExpired):
			render.Errors(w, http.StatusUnauthorized, "Unauthorized")
		default:
			h.logger.Error("token refresh failed", "error", err.Error())
			render.InternalError(w)
		}
		return
	}

	// Rotate the cookie: every refresh hands out a fresh refresh token too
	h.auth.SetRefreshCookie(w, pair.Refresh)
	render.JSON(w, refreshSuccessResponse{AccessToken: pair.Access.Value})
}

// logout clears the refresh cookie and nothing else
// There is no server side session to revoke, an expired or absent
// session logs out just as successfully
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	type logoutSuccessResponse struct {
		Message string `json:"message"`
	}

	h.auth.ClearRefreshCookie(w)
	render.JSON(w, logoutSuccessResponse{Message: "Logged out successfully"})
}
