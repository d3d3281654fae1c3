package service

import (
	commonerrors "github.com/inkform/blog-backend/internal/common/errors"
)

var (
	ErrMissingFields = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		400,
		"missing required fields",
	)

	// Surfaced as 400 rather than 409: the signup contract reports a
	// duplicate email the same way as any other bad request.
	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		400,
		"email already registered",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		401,
		"invalid credentials",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryUnauthorized,
		401,
		"user not found",
	)

	ErrProfileNotFound = commonerrors.NewDomainError(
		"PROFILE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		404,
		"user not found",
	)

	ErrRegistrationFailed = commonerrors.NewDomainError(
		"REGISTRATION_FAILED",
		commonerrors.CategoryInternal,
		500,
		"registration failed",
	)
)
