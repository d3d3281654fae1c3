package http

const (
	CodeUnknown              = "UNKNOWN"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON          = "INVALID_JSON"
	CodeBlogIDRequired       = "BLOG_ID_REQUIRED"
	CodeInvalidBlogIDFormat  = "INVALID_BLOG_ID_FORMAT"
	CodeMissingAuthorization = "MISSING_AUTHORIZATION"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeValidationFailed     = "VALIDATION_FAILED"
)
