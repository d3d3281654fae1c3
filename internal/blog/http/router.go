package http

import (
	"net/http"
	"time"

	"github.com/inkform/blog-backend/internal/blog/domain"
	"github.com/inkform/blog-backend/internal/blog/service"
	"github.com/inkform/blog-backend/internal/common/config"
	commonhttp "github.com/inkform/blog-backend/internal/common/http"
	"github.com/inkform/blog-backend/internal/common/jwtverify"
	"github.com/inkform/blog-backend/internal/common/logger"
)

type saveDraftRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
	Status  string `json:"status" validate:"omitempty,oneof=draft published"`
}

type publishRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

type saveResponse struct {
	Message string `json:"message"`
	Blog    string `json:"blog"`
}

type blogResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags"`
	Status    string    `json:"status"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Handler struct {
	blogs *service.BlogService
	cfg   config.Config
	errs  *commonhttp.ErrorHandler
	log   *logger.Logger
}

func NewHandler(blogs *service.BlogService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{
		blogs: blogs,
		cfg:   cfg,
		errs:  commonhttp.NewErrorHandler(log),
		log:   log,
	}

	requireAuth := jwtverify.Middleware(cfg.JWTSecret, log)
	optionalAuth := jwtverify.OptionalMiddleware(cfg.JWTSecret, log)
	post := commonhttp.RequireMethod(http.MethodPost)
	get := commonhttp.RequireMethod(http.MethodGet)
	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	getBlog := optionalAuth(http.HandlerFunc(timeout(h.getBlog)))
	deleteBlog := requireAuth(http.HandlerFunc(timeout(h.deleteBlog)))

	mux := http.NewServeMux()
	mux.Handle("/api/blogs/save-draft", requireAuth(post(timeout(h.saveDraft))))
	mux.Handle("/api/blogs/publish", requireAuth(post(timeout(h.publish))))
	mux.Handle("/api/blogs/my", requireAuth(get(timeout(h.listMine))))
	mux.HandleFunc("/api/blogs", get(timeout(h.listPublished)))
	mux.HandleFunc("/api/blogs/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getBlog.ServeHTTP(w, r)
		case http.MethodDelete:
			deleteBlog.ServeHTTP(w, r)
		default:
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		}
	})
	return mux
}

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
		return
	}

	var req saveDraftRequest
	if err := commonhttp.DecodeValid(r, &req); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	result, err := h.blogs.SaveDraft(r.Context(), claims.UserID, service.SaveDraftInput{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Status:  domain.Status(req.Status),
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	if result.Created {
		commonhttp.WriteJSON(w, http.StatusCreated, saveResponse{Message: "draft saved", Blog: result.ID})
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, saveResponse{Message: "draft updated", Blog: result.ID})
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
		return
	}

	var req publishRequest
	if err := commonhttp.DecodeValid(r, &req); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	result, err := h.blogs.Publish(r.Context(), claims.UserID, service.PublishInput{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	if result.Created {
		commonhttp.WriteJSON(w, http.StatusCreated, saveResponse{Message: "blog published", Blog: result.ID})
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, saveResponse{Message: "blog published", Blog: result.ID})
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
		return
	}

	blogs, err := h.blogs.ListMine(r.Context(), claims.UserID)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	out := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResponse(b, ""))
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) listPublished(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.ListPublished(r.Context())
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	out := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResponse(b.Blog, b.Author))
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) getBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.blogID(w, r)
	if !ok {
		return
	}

	callerID := ""
	if claims, ok := jwtverify.FromContext(r.Context()); ok {
		callerID = claims.UserID
	}

	blog, err := h.blogs.GetByID(r.Context(), callerID, id)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toBlogResponse(blog.Blog, blog.Author))
}

func (h *Handler) deleteBlog(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
		return
	}

	id, ok := h.blogID(w, r)
	if !ok {
		return
	}

	if err := h.blogs.Delete(r.Context(), claims.UserID, id); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "blog deleted"})
}

// blogID extracts and validates the id path segment, writing the error
// response itself when the segment is missing or malformed.
func (h *Handler) blogID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := commonhttp.ExtractBlogIDFromPath(r.URL.Path)
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBlogIDRequired, "blog id is required", nil, "")
		return "", false
	}

	if err := commonhttp.ValidateUUID(id); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidBlogIDFormat, "invalid blog id format", nil, "")
		return "", false
	}

	return id, true
}

func toBlogResponse(b domain.Blog, author string) blogResponse {
	return blogResponse{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Tags:      b.Tags,
		Status:    string(b.Status),
		Author:    author,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
