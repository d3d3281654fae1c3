package http

import (
	"net/http"

	"github.com/inkform/blog-backend/internal/auth/domain"
	"github.com/inkform/blog-backend/internal/auth/service"
	"github.com/inkform/blog-backend/internal/common/config"
	commonhttp "github.com/inkform/blog-backend/internal/common/http"
	"github.com/inkform/blog-backend/internal/common/jwtverify"
	"github.com/inkform/blog-backend/internal/common/logger"
)

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type Handler struct {
	auth *service.AuthService
	cfg  config.Config
	errs *commonhttp.ErrorHandler
	log  *logger.Logger
}

func NewHandler(auth *service.AuthService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{
		auth: auth,
		cfg:  cfg,
		errs: commonhttp.NewErrorHandler(log),
		log:  log,
	}

	requireAuth := jwtverify.Middleware(cfg.JWTSecret, log)
	post := commonhttp.RequireMethod(http.MethodPost)
	get := commonhttp.RequireMethod(http.MethodGet)
	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup", post(timeout(h.signup)))
	mux.HandleFunc("/auth/login", post(timeout(h.login)))
	mux.Handle("/auth/user", requireAuth(get(timeout(h.user))))
	return mux
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := commonhttp.DecodeValid(r, &req); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "signup successful",
		Token:   result.Token,
		User:    toUserResponse(result.User),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeValid(r, &req); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Message: "login successful",
		Token:   result.Token,
		User:    toUserResponse(result.User),
	})
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
		return
	}

	profile, err := h.auth.Profile(r.Context(), claims.UserID)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toUserResponse(profile))
}

func toUserResponse(p domain.Profile) userResponse {
	return userResponse{
		ID:       string(p.ID),
		Username: p.Username,
		Email:    p.Email,
	}
}
