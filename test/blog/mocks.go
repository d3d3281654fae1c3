package blog

import (
	"context"

	blogdomain "github.com/inkform/blog-backend/internal/blog/domain"
	blogrepo "github.com/inkform/blog-backend/internal/blog/repository"
)

const testJWTSecret = "test-jwt-secret-test-jwt-secret!"

type mockBlogRepo struct {
	findByIDWithAuthorFunc func(ctx context.Context, id string) (blogdomain.BlogWithAuthor, error)
	listByOwnerFunc        func(ctx context.Context, ownerID string) ([]blogdomain.Blog, error)
	listPublishedFunc      func(ctx context.Context) ([]blogdomain.BlogWithAuthor, error)
	deleteOwnedFunc        func(ctx context.Context, id, ownerID string) (bool, error)
}

func (m *mockBlogRepo) FindByIDWithAuthor(ctx context.Context, id string) (blogdomain.BlogWithAuthor, error) {
	if m.findByIDWithAuthorFunc != nil {
		return m.findByIDWithAuthorFunc(ctx, id)
	}
	return blogdomain.BlogWithAuthor{}, blogrepo.ErrBlogNotFound
}

func (m *mockBlogRepo) ListByOwner(ctx context.Context, ownerID string) ([]blogdomain.Blog, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockBlogRepo) ListPublished(ctx context.Context) ([]blogdomain.BlogWithAuthor, error) {
	if m.listPublishedFunc != nil {
		return m.listPublishedFunc(ctx)
	}
	return nil, nil
}

func (m *mockBlogRepo) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	if m.deleteOwnedFunc != nil {
		return m.deleteOwnedFunc(ctx, id, ownerID)
	}
	return false, nil
}

type mockTx struct {
	findOwnedForUpdateFunc func(ctx context.Context, id, ownerID string) (blogdomain.Blog, error)
	insertFunc             func(ctx context.Context, blog blogdomain.Blog) error
	updateFunc             func(ctx context.Context, blog blogdomain.Blog) error
}

func (m *mockTx) Commit(ctx context.Context) error   { return nil }
func (m *mockTx) Rollback(ctx context.Context) error { return nil }

func (m *mockTx) FindOwnedForUpdate(ctx context.Context, id, ownerID string) (blogdomain.Blog, error) {
	if m.findOwnedForUpdateFunc != nil {
		return m.findOwnedForUpdateFunc(ctx, id, ownerID)
	}
	return blogdomain.Blog{}, blogrepo.ErrBlogNotFound
}

func (m *mockTx) Insert(ctx context.Context, blog blogdomain.Blog) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, blog)
	}
	return nil
}

func (m *mockTx) Update(ctx context.Context, blog blogdomain.Blog) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, blog)
	}
	return nil
}

type mockTxManager struct {
	tx        *mockTx
	commitErr error
}

// WithTx mirrors the real manager: fn's error wins, otherwise the commit
// outcome is what the caller sees.
func (m *mockTxManager) WithTx(ctx context.Context, fn func(context.Context, blogrepo.Tx) error) error {
	if err := fn(ctx, m.tx); err != nil {
		return err
	}
	return m.commitErr
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "6f1f2fc2-95a7-4ad7-9a5f-3f8f4f0c2a11", nil
}
