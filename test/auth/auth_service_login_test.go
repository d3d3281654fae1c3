package auth

import (
	"context"
	"errors"
	"testing"

	authdomain "github.com/inkform/blog-backend/internal/auth/domain"
	"github.com/inkform/blog-backend/internal/auth/service"
)

func TestAuthService_Login_Success(t *testing.T) {
	svc, tokens, repo, hasher, _, mockClock := setupAuthService(t)

	userID := "7b1a4e9c-0b52-4c01-9d8f-2f8f1a0c3de1"
	stored := authdomain.User{
		ID:           authdomain.ID(userID),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed_secret",
		CreatedAt:    mockClock.Now(),
	}

	repo.findByEmailFunc = func(ctx context.Context, email string) (authdomain.User, error) {
		if email != stored.Email {
			t.Errorf("expected lookup by %s, got %s", stored.Email, email)
		}
		return stored, nil
	}

	compared := false
	hasher.compareFunc = func(hash string, password string) error {
		compared = true
		if hash != stored.PasswordHash {
			t.Errorf("expected stored hash, got %s", hash)
		}
		if password != "secret123" {
			t.Errorf("expected provided password, got %s", password)
		}
		return nil
	}

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !compared {
		t.Error("expected password to be compared against the stored hash")
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
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _, _, _, _, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "", Password: "secret123"})
	if !errors.Is(err, service.ErrMissingFields) {
		t.Errorf("expected ErrMissingFields for empty email, got %v", err)
	}

	_, err = svc.Login(context.Background(), service.LoginInput{Email: "a@b.com", Password: ""})
	if !errors.Is(err, service.ErrMissingFields) {
		t.Errorf("expected ErrMissingFields for empty password, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _, hasher, _, _ := setupAuthService(t)

	compared := false
	hasher.compareFunc = func(hash string, password string) error {
		compared = true
		return nil
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if compared {
		t.Error("expected no password comparison for unknown user")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, repo, hasher, _, _ := setupAuthService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (authdomain.User, error) {
		return authdomain.User{
			ID:           "7b1a4e9c-0b52-4c01-9d8f-2f8f1a0c3de1",
			Username:     "alice",
			Email:        email,
			PasswordHash: "hashed_secret",
		}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("hash mismatch")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	svc, _, repo, _, _, _ := setupAuthService(t)

	userID := "7b1a4e9c-0b52-4c01-9d8f-2f8f1a0c3de1"
	repo.findByIDFunc = func(ctx context.Context, id authdomain.ID) (authdomain.User, error) {
		if string(id) != userID {
			t.Errorf("expected lookup by %s, got %s", userID, id)
		}
		return authdomain.User{
			ID:           authdomain.ID(userID),
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hashed_secret",
		}, nil
	}

	profile, err := svc.Profile(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Username != "alice" || profile.Email != "alice@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestAuthService_Profile_NotFound(t *testing.T) {
	svc, _, _, _, _, _ := setupAuthService(t)

	_, err := svc.Profile(context.Background(), "7b1a4e9c-0b52-4c01-9d8f-2f8f1a0c3de1")
	if !errors.Is(err, service.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
