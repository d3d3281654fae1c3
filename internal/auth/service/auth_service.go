package service

import (
	"context"
	"errors"
	"strings"

	"github.com/inkform/blog-backend/internal/auth/domain"
	authrepo "github.com/inkform/blog-backend/internal/auth/repository"
	"github.com/inkform/blog-backend/internal/common/clock"
	commoncrypto "github.com/inkform/blog-backend/internal/common/crypto"
	"github.com/inkform/blog-backend/internal/common/logger"
	"github.com/inkform/blog-backend/internal/observability/metrics"
)

type AuthService struct {
	repo        authrepo.Repository
	tokens      *TokenIssuer
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	repo authrepo.Repository,
	tokens *TokenIssuer,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		tokens:      tokens,
		hasher:      hasher,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  domain.Profile
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if isBlank(input.Username) || isBlank(input.Email) || isBlank(input.Password) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_validation_failed",
		}).Warn("register failed: missing fields")
		return AuthResult{}, ErrMissingFields
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, ErrRegistrationFailed.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return AuthResult{}, ErrRegistrationFailed.WithCause(err)
	}

	user := domain.User{
		ID:           domain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, authrepo.ErrEmailAlreadyRegistered) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_taken",
			}).Warn("register failed: email already registered")
			return AuthResult{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, ErrRegistrationFailed.WithCause(err)
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": id,
			"action":  "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return AuthResult{}, ErrRegistrationFailed.WithCause(err)
	}

	metrics.UsersRegistered.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": id,
		"action":  "register_success",
	}).Info("register success")

	return AuthResult{Token: token, User: user.Profile()}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	if isBlank(input.Email) || isBlank(input.Password) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_validation_failed",
		}).Warn("login failed: missing fields")
		return AuthResult{}, ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, authrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return AuthResult{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return AuthResult{Token: token, User: user.Profile()}, nil
}

// Profile resolves a user id (typically from a verified token) to the
// stored account, failing when the account no longer exists.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, domain.ID(userID))
	if err != nil {
		if errors.Is(err, authrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"action":  "profile_not_found",
			}).Warn("profile lookup failed: not found")
			return domain.Profile{}, ErrProfileNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "profile_fetch_failed",
		}).Errorf("profile lookup failed: %v", err)
		return domain.Profile{}, err
	}

	return user.Profile(), nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
