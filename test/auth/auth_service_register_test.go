package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "github.com/inkform/blog-backend/internal/auth/domain"
	authrepo "github.com/inkform/blog-backend/internal/auth/repository"
	"github.com/inkform/blog-backend/internal/auth/service"
	"github.com/inkform/blog-backend/internal/common/clock"
	commonerrors "github.com/inkform/blog-backend/internal/common/errors"
	"github.com/inkform/blog-backend/internal/common/logger"
)

func setupAuthService(t *testing.T) (*service.AuthService, *service.TokenIssuer, *mockUserRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	_ = t
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	// Anchored at wall time: jwt exp validation compares against time.Now,
	// so tokens issued off the mock clock must not be born expired.
	mockClock := clock.NewMockClock(time.Now())

	log, _ := logger.New("", "test", "info")

	tokens := service.NewTokenIssuer(testJWTSecret, idGenerator, 7*24*time.Hour, mockClock)
	authService := service.NewAuthService(repo, tokens, hasher, idGenerator, mockClock, log)

	return authService, tokens, repo, hasher, idGenerator, mockClock
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, tokens, repo, hasher, idGenerator, _ := setupAuthService(t)

	userID := "7b1a4e9c-0b52-4c01-9d8f-2f8f1a0c3de1"
	username := "alice"
	email := "alice@example.com"
	hashedPassword := "hashed_secret"

	idGenerator.newIDFunc = func() (string, error) {
		return userID, nil
	}

	hasher.hashFunc = func(p string) (string, error) {
		if p != "secret123" {
			t.Errorf("expected password secret123, got %s", p)
		}
		return hashedPassword, nil
	}

	repo.createFunc = func(ctx context.Context, user authdomain.User) error {
		if user.Username != username {
			t.Errorf("expected username %s, got %s", username, user.Username)
		}
		if user.Email != email {
			t.Errorf("expected email %s, got %s", email, user.Email)
		}
		if user.PasswordHash != hashedPassword {
			t.Errorf("expected password hash %s, got %s", hashedPassword, user.PasswordHash)
		}
		return nil
	}

	result, err := svc.Register(context.Background(), service.RegisterInput{
		Username: username,
		Email:    email,
		Password: "secret123",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" {
		t.Error("expected token to be set")
	}
	if string(result.User.ID) != userID {
		t.Errorf("expected user id %s, got %s", userID, result.User.ID)
	}

	claims, err := tokens.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("expected issued token to parse, got %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected token subject %s, got %s", userID, claims.UserID)
	}
	if claims.Username != username {
		t.Errorf("expected token username %s, got %s", username, claims.Username)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _, repo, _, _, _ := setupAuthService(t)

	created := false
	repo.createFunc = func(ctx context.Context, user authdomain.User) error {
		created = true
		return nil
	}

	cases := []struct {
		name  string
		input service.RegisterInput
	}{
		{"empty username", service.RegisterInput{Email: "a@b.com", Password: "p"}},
		{"empty email", service.RegisterInput{Username: "a", Password: "p"}},
		{"empty password", service.RegisterInput{Username: "a", Email: "a@b.com"}},
		{"whitespace username", service.RegisterInput{Username: "   ", Email: "a@b.com", Password: "p"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			if !errors.Is(err, service.ErrMissingFields) {
				t.Errorf("expected ErrMissingFields, got %v", err)
			}
		})
	}

	if created {
		t.Error("expected no user to be created")
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, _, repo, _, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, user authdomain.User) error {
		return authrepo.ErrEmailAlreadyRegistered
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	var domainErr commonerrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatal("expected a domain error")
	}
	if domainErr.HTTPStatus() != 400 {
		t.Errorf("expected status 400, got %d", domainErr.HTTPStatus())
	}
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	svc, _, repo, hasher, _, _ := setupAuthService(t)

	hasher.hashFunc = func(p string) (string, error) {
		return "", errors.New("bcrypt exploded")
	}

	created := false
	repo.createFunc = func(ctx context.Context, user authdomain.User) error {
		created = true
		return nil
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	if !errors.Is(err, service.ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
	if created {
		t.Error("expected no user to be created after hash failure")
	}
}
