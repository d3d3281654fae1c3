package service

import (
	commonerrors "github.com/inkform/blog-backend/internal/common/errors"
)

var (
	ErrTitleRequired = commonerrors.NewDomainError(
		"TITLE_REQUIRED",
		commonerrors.CategoryValidation,
		400,
		"title is required",
	)

	ErrTitleContentRequired = commonerrors.NewDomainError(
		"TITLE_CONTENT_REQUIRED",
		commonerrors.CategoryValidation,
		400,
		"title and content are required",
	)

	ErrInvalidStatus = commonerrors.NewDomainError(
		"INVALID_STATUS",
		commonerrors.CategoryValidation,
		400,
		"status must be draft or published",
	)

	// Ownership mismatch and nonexistence are deliberately the same error:
	// a caller must not learn whether someone else's blog id exists.
	ErrBlogForbidden = commonerrors.NewDomainError(
		"BLOG_FORBIDDEN",
		commonerrors.CategoryForbidden,
		403,
		"blog not found or you lack permission",
	)

	ErrBlogNotFound = commonerrors.NewDomainError(
		"BLOG_NOT_FOUND",
		commonerrors.CategoryNotFound,
		404,
		"blog not found",
	)

	ErrWriteFailed = commonerrors.NewDomainError(
		"WRITE_FAILED",
		commonerrors.CategoryInternal,
		500,
		"failed to save blog",
	)
)
