package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/inkform/blog-backend/internal/blog/domain"
	"github.com/inkform/blog-backend/internal/common/constants"
	"github.com/inkform/blog-backend/internal/common/db"
)

// Tx scopes one blog write. The whole write commits or rolls back as a
// unit; a failed commit never leaves a half-updated post.
type Tx interface {
	db.Tx
	FindOwnedForUpdate(ctx context.Context, id, ownerID string) (domain.Blog, error)
	Insert(ctx context.Context, blog domain.Blog) error
	Update(ctx context.Context, blog domain.Blog) error
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(context.Context, Tx) error) error
}

type PgTxManager struct {
	pool *pgxpool.Pool
}

func NewPgTxManager(pool *pgxpool.Pool) *PgTxManager {
	return &PgTxManager{pool: pool}
}

// WithTx runs fn inside a transaction. The named result lets the deferred
// commit report its failure to the caller instead of vanishing.
func (m *PgTxManager) WithTx(ctx context.Context, fn func(context.Context, Tx) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	blogTx := &pgBlogTx{tx: tx}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(ctx, blogTx)
	return err
}

type pgBlogTx struct {
	tx pgx.Tx
}

func (t *pgBlogTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgBlogTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *pgBlogTx) FindOwnedForUpdate(ctx context.Context, id, ownerID string) (domain.Blog, error) {
	row := t.tx.QueryRow(
		ctx,
		`SELECT id, title, content, tags, status, user_id, created_at, updated_at
		 FROM blogs
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE`,
		id,
		ownerID,
	)

	var b domain.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Tags, &b.Status, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Blog{}, ErrBlogNotFound
		}
		return domain.Blog{}, fmt.Errorf("failed to lock blog for update: %w", err)
	}

	return b, nil
}

func (t *pgBlogTx) Insert(ctx context.Context, blog domain.Blog) error {
	_, err := t.tx.Exec(
		ctx,
		`INSERT INTO blogs (id, title, content, tags, status, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.Tags,
		string(blog.Status),
		blog.UserID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert blog: %w", err)
	}
	return nil
}

func (t *pgBlogTx) Update(ctx context.Context, blog domain.Blog) error {
	_, err := t.tx.Exec(
		ctx,
		`UPDATE blogs
		 SET title = $2, content = $3, tags = $4, status = $5, updated_at = $6
		 WHERE id = $1`,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.Tags,
		string(blog.Status),
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return nil
}
