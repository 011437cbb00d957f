package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ndenisov/authd/internal/apperrors"
	"github.com/ndenisov/authd/internal/models"
	"github.com/ndenisov/authd/internal/repository"
	"github.com/ndenisov/authd/internal/service/auth/tokenmanager"
)

const (
	defaultRefreshCookieName = "refreshToken"
	defaultAccessCookieName  = "accessToken"
	defaultAccessAuthScheme  = "Bearer"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during registration and login
	// Defaults to BcryptHasher
	Hasher PasswordHasher

	// Cookie and header names, defaults applied when empty
	RefreshCookieName string
	AccessCookieName  string
	AccessAuthScheme  string

	// Mark the refresh cookie Secure, enable in production
	SecureCookies bool
}

// Auth service
type AuthService struct {
	// Manager to issue and verify token pairs (access and refresh)
	token *tokenmanager.TokenManager

	// hasher to hash or compare user passwords
	hasher PasswordHasher

	// Repository to access long term data
	userRepo repository.UserRepo

	refreshCookieName string
	accessCookieName  string
	accessAuthScheme  string
	secureCookies     bool

	// Hash compared against when the email is unknown, so login takes
	// about as long whether or not the user exists
	decoyHash string
}

func NewService(cfg Config, token *tokenmanager.TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	if token == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	setDefaultString := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	setDefaultString(&cfg.RefreshCookieName, defaultRefreshCookieName)
	setDefaultString(&cfg.AccessCookieName, defaultAccessCookieName)
	setDefaultString(&cfg.AccessAuthScheme, defaultAccessAuthScheme)

	decoyHash, err := hasher.Hash("authd-decoy-password")
	if err != nil {
		return nil, fmt.Errorf("error while preparing decoy hash. Err: %w", err)
	}

	return &AuthService{
		token:             token,
		hasher:            hasher,
		userRepo:          userRepo,
		refreshCookieName: cfg.RefreshCookieName,
		accessCookieName:  cfg.AccessCookieName,
		accessAuthScheme:  cfg.AccessAuthScheme,
		secureCookies:     cfg.SecureCookies,
		decoyHash:         decoyHash,
	}, nil
}

// SignUp creates a user with the hashed password and issues the first token pair
// Returns apperrors.ErrEmailTaken if the email is already registered
func (s *AuthService) SignUp(ctx context.Context, email string, password string) (models.User, models.TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, email, hash)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	pair, err := s.token.GeneratePair(user)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return user, pair, nil
}

// Login verifies credentials and issues a fresh token pair
// Unknown email and wrong password both return apperrors.ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrUserNotFound):
		// Burn a compare anyway to keep timing close to the found case
		_ = s.hasher.Compare(s.decoyHash, password)
		return models.User{}, models.TokenPair{}, apperrors.ErrInvalidCredentials
	default:
		return models.User{}, models.TokenPair{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return models.User{}, models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.token.GeneratePair(user)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return user, pair, nil
}

// Refresh verifies the refresh token, re-resolves its subject and issues a new pair
// The token's subject is never trusted without the store lookup: the user
// may have been removed since issuance
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.User, models.TokenPair, error) {
	userID, err := s.token.ParseRefresh(refresh)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	pair, err := s.token.GeneratePair(user)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return user, pair, nil
}

// CurrentUser verifies the access token and returns the user it belongs to
func (s *AuthService) CurrentUser(ctx context.Context, access string) (models.User, error) {
	userID, err := s.token.ParseAccess(access)
	if err != nil {
		return models.User{}, err
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// UserFromRequest extracts the access token from the request and resolves the user
func (s *AuthService) UserFromRequest(ctx context.Context, r *http.Request) (models.User, error) {
	access, err := s.ReadAccessToken(r)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrTokenInvalid, err)
	}

	return s.CurrentUser(ctx, access)
}

// SetRefreshCookie hands the refresh token to the client as an HTTP-only cookie
// The token value never appears in a response body
func (s *AuthService) SetRefreshCookie(w http.ResponseWriter, refresh models.IssuedToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.refreshCookieName,
		Value:    refresh.Value,
		MaxAge:   int(time.Until(refresh.ExpiresAt).Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearRefreshCookie instructs the client to drop the refresh cookie
func (s *AuthService) ClearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.refreshCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadRefreshToken returns the refresh token from the request cookie
func (s *AuthService) ReadRefreshToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(s.refreshCookieName)
	if err != nil {
		return "", fmt.Errorf("refresh cookie not found: %w", err)
	}

	return cookie.Value, nil
}

// ReadAccessToken returns the access token from the Authorization header,
// falling back to the access cookie
func (s *AuthService) ReadAccessToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header != "" {
		value, found := strings.CutPrefix(header, s.accessAuthScheme+" ")
		if !found {
			return "", fmt.Errorf("authorization header is not a %s token", s.accessAuthScheme)
		}
		return value, nil
	}

	cookie, err := r.Cookie(s.accessCookieName)
	if err != nil {
		return "", errors.New("no access token in request")
	}

	return cookie.Value, nil
}
