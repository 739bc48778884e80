package service

import (
	"context"
	"strings"
	"time"

	"critica/internal/mailer"
	"critica/internal/middleware"
	"critica/internal/models"
	"critica/internal/observability"
	"critica/internal/repository"
	"critica/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService implements the passwordless signup flow: a signup request
// mails the user a confirmation code, and the code is later exchanged
// for a JWT access token.
type AuthService struct {
	userRepo repository.UserRepository
	mailer   mailer.Mailer

	jwtSecret string
	tokenTTL  time.Duration

	// generateCode is swappable in tests.
	generateCode func() string
}

type SignupInput struct {
	Username string
	Email    string
}

type TokenInput struct {
	Username         string
	ConfirmationCode string
}

func NewAuthService(userRepo repository.UserRepository, m mailer.Mailer, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		mailer:    m,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		generateCode: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// Signup registers a user or, for an exact (username, email) match of an
// existing one, issues that user a fresh confirmation code. Each call
// invalidates any code mailed before it. Partial matches are conflicts:
// the same username under a different email is rejected, and vice versa.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		observability.SignupRequests.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		observability.SignupRequests.WithLabelValues("rejected").Inc()
		return nil, err
	}

	code := s.generateCode()

	// Repeat signup for the same pair: regenerate in place, no new row.
	existing, err := s.userRepo.RegenerateConfirmationCode(ctx, in.Username, in.Email, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.mailer.SendConfirmationCode(ctx, existing.Email, existing.Username, code); err != nil {
			observability.SignupRequests.WithLabelValues("mail_failed").Inc()
			return nil, models.NewInternalError(err)
		}
		observability.SignupRequests.WithLabelValues("repeat").Inc()
		return existing, nil
	}

	byUsername, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if byUsername != nil {
		observability.SignupRequests.WithLabelValues("conflict").Inc()
		return nil, models.NewFieldValidationError("username", "A user with that username already exists")
	}
	byEmail, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil {
		observability.SignupRequests.WithLabelValues("conflict").Inc()
		return nil, models.NewFieldValidationError("email", "A user with that email already exists")
	}

	user := &models.User{
		Username:         in.Username,
		Email:            in.Email,
		Role:             models.RoleUser,
		ConfirmationCode: code,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendConfirmationCode(ctx, user.Email, user.Username, code); err != nil {
		observability.SignupRequests.WithLabelValues("mail_failed").Inc()
		return nil, models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "User signed up", "username", user.Username)
	observability.SignupRequests.WithLabelValues("created").Inc()
	return user, nil
}

// IssueToken exchanges a confirmation code for a signed JWT. An unknown
// username is a 404; a known username with the wrong code is a 400.
func (s *AuthService) IssueToken(ctx context.Context, in TokenInput) (string, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return "", err
	}
	if in.ConfirmationCode == "" {
		return "", models.NewFieldValidationError("confirmation_code", "This field is required")
	}

	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewNotFoundError("User", in.Username)
	}
	if user.ConfirmationCode == "" || user.ConfirmationCode != in.ConfirmationCode {
		return "", models.NewFieldValidationError("confirmation_code", "Invalid confirmation code")
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	observability.TokensIssued.Inc()
	middleware.Logger.InfoContext(ctx, "Token issued", "username", user.Username)
	return token, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"username":  user.Username,
		"role":      string(user.Role),
		"superuser": user.Superuser,
		"iss":       "critica-api",
		"aud":       "critica-client",
		"exp":       now.Add(s.tokenTTL).Unix(),
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"jti":       uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
