package auth

import (
	"context"

	authdomain "github.com/inkform/blog-backend/internal/auth/domain"
	authrepo "github.com/inkform/blog-backend/internal/auth/repository"
)

const testJWTSecret = "test-jwt-secret-test-jwt-secret!"

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user authdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (authdomain.User, error)
	findByIDFunc    func(ctx context.Context, id authdomain.ID) (authdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user authdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (authdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return authdomain.User{}, authrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id authdomain.ID) (authdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return authdomain.User{}, authrepo.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "00000000-0000-4000-8000-000000000001", nil
}
