package http

import (
	"net/http"

	"github.com/inkform/blog-backend/internal/common/constants"
	"github.com/inkform/blog-backend/internal/common/httpmetrics"
	"github.com/inkform/blog-backend/internal/common/logger"
)

func BuildBaseHandler(corsOrigin string, log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	cors := CORSMiddleware(corsOrigin)

	return securityHeaders(cors(recovery(traceID(maxRequestSize(metrics.Wrap(handler))))))
}
