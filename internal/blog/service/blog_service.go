package service

import (
	"context"
	"errors"
	"strings"

	"github.com/inkform/blog-backend/internal/blog/domain"
	blogrepo "github.com/inkform/blog-backend/internal/blog/repository"
	"github.com/inkform/blog-backend/internal/common/clock"
	commoncrypto "github.com/inkform/blog-backend/internal/common/crypto"
	"github.com/inkform/blog-backend/internal/common/logger"
	"github.com/inkform/blog-backend/internal/observability/metrics"
)

type BlogService struct {
	repo        blogrepo.Repository
	txm         blogrepo.TxManager
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewBlogService(
	repo blogrepo.Repository,
	txm blogrepo.TxManager,
	idGenerator commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *BlogService {
	return &BlogService{
		repo:        repo,
		txm:         txm,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

type SaveDraftInput struct {
	ID      string
	Title   string
	Content string
	Tags    string
	Status  domain.Status
}

type PublishInput struct {
	ID      string
	Title   string
	Content string
	Tags    string
}

type SaveResult struct {
	ID      string
	Created bool
}

// SaveDraft creates or overwrites a blog owned by callerID. Status
// defaults to draft but a caller may save directly as published, which
// then requires non-empty content.
func (s *BlogService) SaveDraft(ctx context.Context, callerID string, input SaveDraftInput) (SaveResult, error) {
	if isBlank(input.Title) {
		return SaveResult{}, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.IsValid() {
		return SaveResult{}, ErrInvalidStatus
	}
	// Saving directly as published carries Publish's content requirement:
	// a published blog never has empty content.
	if status == domain.StatusPublished && isBlank(input.Content) {
		return SaveResult{}, ErrTitleContentRequired
	}

	return s.save(ctx, callerID, domain.Blog{
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
		Tags:    input.Tags,
		Status:  status,
	})
}

// Publish creates or overwrites a blog and forces it into the published
// state, which requires both title and content.
func (s *BlogService) Publish(ctx context.Context, callerID string, input PublishInput) (SaveResult, error) {
	if isBlank(input.Title) || isBlank(input.Content) {
		return SaveResult{}, ErrTitleContentRequired
	}

	return s.save(ctx, callerID, domain.Blog{
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
		Tags:    input.Tags,
		Status:  domain.StatusPublished,
	})
}

func (s *BlogService) save(ctx context.Context, callerID string, blog domain.Blog) (SaveResult, error) {
	if blog.ID != "" {
		return s.overwrite(ctx, callerID, blog)
	}
	return s.create(ctx, callerID, blog)
}

func (s *BlogService) create(ctx context.Context, callerID string, blog domain.Blog) (SaveResult, error) {
	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": callerID,
			"action":  "blog_id_generation_failed",
		}).Errorf("blog create failed: id generation error: %v", err)
		return SaveResult{}, ErrWriteFailed.WithCause(err)
	}

	now := s.clock.Now()
	blog.ID = id
	blog.UserID = callerID
	blog.CreatedAt = now
	blog.UpdatedAt = now

	err = s.txm.WithTx(ctx, func(ctx context.Context, tx blogrepo.Tx) error {
		return tx.Insert(ctx, blog)
	})
	if err != nil {
		metrics.BlogWriteFailures.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": callerID,
			"blog_id": id,
			"action":  "blog_create_failed",
		}).Errorf("blog create failed: %v", err)
		return SaveResult{}, ErrWriteFailed.WithCause(err)
	}

	metrics.BlogsCreated.WithLabelValues(string(blog.Status)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": callerID,
		"blog_id": id,
		"status":  string(blog.Status),
		"action":  "blog_created",
	}).Info("blog created")

	return SaveResult{ID: id, Created: true}, nil
}

func (s *BlogService) overwrite(ctx context.Context, callerID string, blog domain.Blog) (SaveResult, error) {
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx blogrepo.Tx) error {
		existing, err := tx.FindOwnedForUpdate(ctx, blog.ID, callerID)
		if err != nil {
			return err
		}

		existing.Title = blog.Title
		existing.Content = blog.Content
		existing.Tags = blog.Tags
		existing.Status = blog.Status
		existing.UpdatedAt = s.clock.Now()

		return tx.Update(ctx, existing)
	})
	if err != nil {
		if errors.Is(err, blogrepo.ErrBlogNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": callerID,
				"blog_id": blog.ID,
				"action":  "blog_overwrite_forbidden",
			}).Warn("blog overwrite rejected: not found or not owned")
			return SaveResult{}, ErrBlogForbidden
		}
		metrics.BlogWriteFailures.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": callerID,
			"blog_id": blog.ID,
			"action":  "blog_overwrite_failed",
		}).Errorf("blog overwrite failed: %v", err)
		return SaveResult{}, ErrWriteFailed.WithCause(err)
	}

	metrics.BlogsUpdated.WithLabelValues(string(blog.Status)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": callerID,
		"blog_id": blog.ID,
		"status":  string(blog.Status),
		"action":  "blog_updated",
	}).Info("blog updated")

	return SaveResult{ID: blog.ID, Created: false}, nil
}

// ListMine returns every blog owned by callerID, drafts included.
func (s *BlogService) ListMine(ctx context.Context, callerID string) ([]domain.Blog, error) {
	blogs, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": callerID,
			"action":  "blog_list_mine_failed",
		}).Errorf("list mine failed: %v", err)
		return nil, err
	}
	return blogs, nil
}

// GetByID serves a single blog. callerID may be empty for anonymous
// reads: published blogs are visible to anyone, drafts only to their
// owner, and anonymous and foreign callers are rejected identically.
func (s *BlogService) GetByID(ctx context.Context, callerID, id string) (domain.BlogWithAuthor, error) {
	blog, err := s.repo.FindByIDWithAuthor(ctx, id)
	if err != nil {
		if errors.Is(err, blogrepo.ErrBlogNotFound) {
			return domain.BlogWithAuthor{}, ErrBlogNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"blog_id": id,
			"action":  "blog_get_failed",
		}).Errorf("get blog failed: %v", err)
		return domain.BlogWithAuthor{}, err
	}

	if blog.Status == domain.StatusDraft && (callerID == "" || callerID != blog.UserID) {
		s.log.WithFields(ctx, logger.Fields{
			"blog_id": id,
			"action":  "blog_draft_access_denied",
		}).Warn("draft access denied")
		return domain.BlogWithAuthor{}, ErrBlogForbidden
	}

	return blog, nil
}

func (s *BlogService) ListPublished(ctx context.Context) ([]domain.BlogWithAuthor, error) {
	blogs, err := s.repo.ListPublished(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "blog_list_published_failed",
		}).Errorf("list published failed: %v", err)
		return nil, err
	}
	return blogs, nil
}

// Delete permanently removes a blog owned by callerID. A foreign or
// missing id reports not found, leaving the owner's blog untouched.
func (s *BlogService) Delete(ctx context.Context, callerID, id string) error {
	deleted, err := s.repo.DeleteOwned(ctx, id, callerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": callerID,
			"blog_id": id,
			"action":  "blog_delete_failed",
		}).Errorf("delete blog failed: %v", err)
		return err
	}

	if !deleted {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": callerID,
			"blog_id": id,
			"action":  "blog_delete_not_found",
		}).Warn("delete rejected: not found or not owned")
		return ErrBlogNotFound
	}

	metrics.BlogsDeleted.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": callerID,
		"blog_id": id,
		"action":  "blog_deleted",
	}).Info("blog deleted")

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
