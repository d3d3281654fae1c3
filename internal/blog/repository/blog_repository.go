package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/inkform/blog-backend/internal/blog/domain"
)

type Repository interface {
	FindByIDWithAuthor(ctx context.Context, id string) (domain.BlogWithAuthor, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Blog, error)
	ListPublished(ctx context.Context) ([]domain.BlogWithAuthor, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) FindByIDWithAuthor(ctx context.Context, id string) (domain.BlogWithAuthor, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT b.id, b.title, b.content, b.tags, b.status, b.user_id, b.created_at, b.updated_at, u.username
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 WHERE b.id = $1`,
		id,
	)

	var b domain.BlogWithAuthor
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Tags, &b.Status, &b.UserID, &b.CreatedAt, &b.UpdatedAt, &b.Author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BlogWithAuthor{}, ErrBlogNotFound
		}
		return domain.BlogWithAuthor{}, fmt.Errorf("failed to find blog by id: %w", err)
	}

	return b, nil
}

func (r *PgRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Blog, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, content, tags, status, user_id, created_at, updated_at
		 FROM blogs
		 WHERE user_id = $1`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs by owner: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var b domain.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Tags, &b.Status, &b.UserID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return blogs, nil
}

func (r *PgRepository) ListPublished(ctx context.Context) ([]domain.BlogWithAuthor, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT b.id, b.title, b.content, b.tags, b.status, b.user_id, b.created_at, b.updated_at, u.username
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 WHERE b.status = 'published'`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list published blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.BlogWithAuthor
	for rows.Next() {
		var b domain.BlogWithAuthor
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Tags, &b.Status, &b.UserID, &b.CreatedAt, &b.UpdatedAt, &b.Author); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return blogs, nil
}

// DeleteOwned removes the blog only when it belongs to ownerID. The caller
// cannot distinguish a missing blog from a foreign one.
func (r *PgRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM blogs WHERE id = $1 AND user_id = $2`,
		id,
		ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete blog: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

var ErrBlogNotFound = pgx.ErrNoRows
