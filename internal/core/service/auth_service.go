package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skryensya/Finances-API/internal/core/domain"
	"github.com/Skryensya/Finances-API/internal/core/ports"
)

// SigninThrottle abstracts the failed-attempt limiter (Redis).
type SigninThrottle interface {
	// Blocked reports whether signin attempts for email are currently throttled.
	Blocked(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure count for email after a successful signin.
	Reset(ctx context.Context, email string) error
}

// AuthService implements signup and signin.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	throttle SigninThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, throttle SigninThrottle, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	if audit == nil {
		audit = ports.NopAuditRecorder{}
	}
	return &AuthService{users: users, tokens: tokens, throttle: throttle, audit: audit, log: log}
}

// Signup hashes the password, creates the user, and returns a bearer token.
// A duplicate email surfaces as domain.ErrEmailTaken; any other store error
// propagates unchanged.
func (s *AuthService) Signup(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// The request validator caps the password at 72 characters, but a
		// multibyte password can still exceed bcrypt's 72-byte limit.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrPasswordTooLong
		}
		return "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.IssueToken(created.ID, created.Email)
	if err != nil {
		return "", err
	}

	s.audit.Record(domain.AuditEntry{
		UserID:    created.ID,
		Action:    domain.AuditSignup,
		Timestamp: now,
	})
	s.log.Info().Int64("user_id", created.ID).Msg("user signed up")

	return token, nil
}

// Signin verifies the credentials and returns a bearer token. An unknown
// email and a wrong password fail identically with
// domain.ErrInvalidCredentials so that account existence never leaks.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("signin throttle check failed, proceeding")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset signin throttle")
		}
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email)
	if err != nil {
		return "", err
	}

	s.audit.Record(domain.AuditEntry{
		UserID:    user.ID,
		Action:    domain.AuditSignin,
		Timestamp: time.Now().UTC(),
	})

	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record signin failure")
	}
}

var _ ports.AuthService = (*AuthService)(nil)
