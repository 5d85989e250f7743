package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"github.com/sangkips/remodela-api/pkg/oauth"
	"github.com/sangkips/remodela-api/pkg/utils"
	"go.uber.org/zap"
)

// GoogleAuthenticator verifies a Google sign-in callback.
type GoogleAuthenticator interface {
	IsConfigured() bool
	AuthURL() (string, error)
	Authenticate(ctx context.Context, state, code string) (*oauth.GoogleIdentity, error)
}

// AuthService handles administrator sign-in
type AuthService struct {
	users    repository.UserRepository
	jwt      *utils.JWTManager
	google   GoogleAuthenticator
	calendar *Calendar
	log      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repository.UserRepository,
	jwt *utils.JWTManager,
	google GoogleAuthenticator,
	calendar *Calendar,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		jwt:      jwt,
		google:   google,
		calendar: calendar,
		log:      log.Named("auth"),
	}
}

// LoginOutput represents the login output
type LoginOutput struct {
	User   *entity.User
	Tokens *utils.TokenPair
}

// Login authenticates an admin by email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" || !utils.CheckPassword(user.Password, password) {
		s.log.Info("login rejected", zap.String("email", email))
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	tokens, err := s.jwt.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{User: user, Tokens: tokens}, nil
}

// GetCurrentUser retrieves the signed-in admin
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("Usuario no encontrado")
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
// Accounts created through Google have no current password and may set one directly.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Password != "" && !utils.CheckPassword(user.Password, current) {
		return apperror.NewFieldError("current_password", "La contraseña actual es incorrecta")
	}
	if len(next) < 8 {
		return apperror.NewFieldError("new_password", "La contraseña debe tener al menos 8 caracteres")
	}

	hashed, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.users.Update(ctx, user)
}

// GoogleAuthURL returns where to send the browser to start Google sign-in
func (s *AuthService) GoogleAuthURL() (string, error) {
	if s.google == nil || !s.google.IsConfigured() {
		return "", apperror.NewAppError(apperror.ErrServiceUnavailable.Code, "El inicio de sesión con Google no está configurado")
	}
	return s.google.AuthURL()
}

// GoogleLogin completes Google sign-in. Only emails that already belong to
// an admin are accepted; no accounts are created here.
func (s *AuthService) GoogleLogin(ctx context.Context, state, code string) (*LoginOutput, error) {
	if s.google == nil {
		return nil, apperror.ErrServiceUnavailable
	}
	identity, err := s.google.Authenticate(ctx, state, code)
	switch {
	case errors.Is(err, oauth.ErrOAuthNotConfigured):
		return nil, apperror.ErrServiceUnavailable
	case errors.Is(err, oauth.ErrInvalidState), errors.Is(err, oauth.ErrInvalidCode), errors.Is(err, oauth.ErrUnverifiedEmail):
		return nil, apperror.ErrUnauthorized
	case err != nil:
		return nil, apperror.NewUpstreamError("No se pudo validar la cuenta de Google")
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Warn("google sign-in for unknown email", zap.String("email", identity.Email))
		return nil, apperror.ErrForbidden
	}

	if user.ProviderID == nil || *user.ProviderID != identity.ID {
		user.ProviderID = &identity.ID
		if user.Password == "" {
			user.Provider = "google"
		}
	}
	if identity.Picture != "" && user.Photo == nil {
		photo := identity.Picture
		user.Photo = &photo
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = identity.Name
	}
	return s.issue(ctx, user)
}

func (s *AuthService) issue(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	now := s.calendar.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.jwt.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	s.log.Info("admin signed in", zap.String("user_id", user.ID.String()))
	return &LoginOutput{User: user, Tokens: tokens}, nil
}
