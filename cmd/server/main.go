package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/inkform/blog-backend/internal/auth/http"
	authrepo "github.com/inkform/blog-backend/internal/auth/repository"
	authservice "github.com/inkform/blog-backend/internal/auth/service"
	bloghttp "github.com/inkform/blog-backend/internal/blog/http"
	blogrepo "github.com/inkform/blog-backend/internal/blog/repository"
	blogservice "github.com/inkform/blog-backend/internal/blog/service"
	"github.com/inkform/blog-backend/internal/common/clock"
	"github.com/inkform/blog-backend/internal/common/config"
	commoncrypto "github.com/inkform/blog-backend/internal/common/crypto"
	"github.com/inkform/blog-backend/internal/common/db"
	commonhttp "github.com/inkform/blog-backend/internal/common/http"
	"github.com/inkform/blog-backend/internal/common/logger"
	srv "github.com/inkform/blog-backend/internal/common/server"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "blog-backend", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()

	userRepo := authrepo.NewPgRepository(pool)
	tokenIssuer := authservice.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.TokenTTL, clk)
	authService := authservice.NewAuthService(userRepo, tokenIssuer, hasher, idGenerator, clk, log)

	blogRepo := blogrepo.NewPgRepository(pool)
	blogTxManager := blogrepo.NewPgTxManager(pool)
	blogService := blogservice.NewBlogService(blogRepo, blogTxManager, idGenerator, clk, log)

	blogHandler := bloghttp.NewHandler(blogService, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/auth/", authhttp.NewHandler(authService, cfg, log))
	mux.Handle("/api/blogs", blogHandler)
	mux.Handle("/api/blogs/", blogHandler)
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(cfg.CORSOrigin, log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "blog-backend")
}
