package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	commonerrors "github.com/inkform/blog-backend/internal/common/errors"
)

var validate = validator.New()

var (
	ErrInvalidJSON = commonerrors.NewDomainError(
		CodeInvalidJSON,
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid json",
	)

	ErrMissingFields = commonerrors.NewDomainError(
		CodeValidationFailed,
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"missing required fields",
	)
)

// DecodeValid decodes the JSON body into v and checks its validate tags.
// Validation failures surface the offending fields but never the values.
func DecodeValid(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return ErrInvalidJSON.WithCause(err)
	}

	if err := validate.Struct(v); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			fields := make([]string, 0, len(vErrs))
			for _, fe := range vErrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return ErrMissingFields.WithCause(fmt.Errorf("invalid fields: %s", strings.Join(fields, ", ")))
		}
		return ErrMissingFields.WithCause(err)
	}

	return nil
}

func ValidateUUID(s string) error {
	if s == "" {
		return commonerrors.ErrEmptyUUID
	}
	_, err := uuid.Parse(s)
	return err
}

// ExtractBlogIDFromPath pulls the trailing id segment from /api/blogs/{id}.
func ExtractBlogIDFromPath(path string) (string, bool) {
	const prefix = "/api/blogs/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	remaining := strings.TrimPrefix(path, prefix)
	parts := strings.Split(remaining, "/")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0], true
	}

	return "", false
}
