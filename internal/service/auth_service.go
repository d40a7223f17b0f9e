package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailExists         = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrProfileValidation   = errors.New("profile validation failed")
	ErrInvalidGoogleToken  = errors.New("invalid google token")
	ErrGoogleLoginDisabled = errors.New("google login is not configured")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrPasswordTooWeak     = util.ErrWeakPassword
)

type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type googleValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	jwt      *util.JWTManager
	aud      string

	validateGoogle googleValidator
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, jwtManager *util.JWTManager, googleAud string) *AuthService {
	return &AuthService{
		users:          users,
		sessions:       sessions,
		jwt:            jwtManager,
		aud:            strings.TrimSpace(googleAud),
		validateGoogle: idtoken.Validate,
	}
}

func (s *AuthService) RegisterWithEmail(ctx context.Context, email, password, username, fullName string) (*AuthResult, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrProfileValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrProfileValidation)
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrProfileValidation)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, ErrPasswordTooWeak
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateEmailUser(ctx, email, username, fullName, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, profileConflict(err)
		}
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if len(user.PasswordHash) == 0 || !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*AuthResult, error) {
	if s.aud == "" {
		return nil, ErrGoogleLoginDisabled
	}
	payload, err := s.validateGoogle(ctx, idTok, s.aud)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	email, _ := payload.Claims["email"].(string)
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}
	var fullName *string
	if name, _ := payload.Claims["name"].(string); strings.TrimSpace(name) != "" {
		trimmed := strings.TrimSpace(name)
		fullName = &trimmed
	}

	user, err := s.users.UpsertGoogleUser(ctx, email, fullName)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

// Authenticate resolves a bearer token to its user. The token must parse and
// still be backed by an active session row.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	session, err := s.sessions.FindActiveSession(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if session.UserID != claims.UserID {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// CurrentUser answers "who is calling". An empty token is an anonymous caller
// and yields a nil user without error.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}
	return s.Authenticate(ctx, token)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeactivateSession(ctx, token)
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Issue(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func profileConflict(err error) error {
	if strings.Contains(violatedConstraint(err), "username") {
		return ErrUsernameTaken
	}
	return ErrEmailExists
}

var _ ports.IdentityProvider = (*AuthService)(nil)
