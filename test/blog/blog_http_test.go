package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authdomain "github.com/inkform/blog-backend/internal/auth/domain"
	authservice "github.com/inkform/blog-backend/internal/auth/service"
	blogdomain "github.com/inkform/blog-backend/internal/blog/domain"
	bloghttp "github.com/inkform/blog-backend/internal/blog/http"
	"github.com/inkform/blog-backend/internal/common/clock"
	"github.com/inkform/blog-backend/internal/common/config"
	"github.com/inkform/blog-backend/internal/common/logger"
)

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type saveBody struct {
	Message string `json:"message"`
	Blog    string `json:"blog"`
}

func setupBlogHandler(t *testing.T) (http.Handler, *mockBlogRepo, *mockTx) {
	svc, repo, tx, _ := setupBlogService(t)
	log, _ := logger.New("", "test", "info")
	cfg := config.Config{JWTSecret: testJWTSecret, RequestTimeout: 30 * time.Second}
	return bloghttp.NewHandler(svc, cfg, log), repo, tx
}

func tokenFor(t *testing.T, userID, username string) string {
	t.Helper()
	issuer := authservice.NewTokenIssuer(testJWTSecret, &mockIDGenerator{}, 7*24*time.Hour, clock.NewMockClock(time.Now()))
	token, err := issuer.IssueToken(authdomain.User{ID: authdomain.ID(userID), Username: username})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return env
}

func TestBlogHTTP_SaveDraft_RequiresAuth(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/blogs/save-draft", "", map[string]string{"title": "Post"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "MISSING_AUTHORIZATION" {
		t.Errorf("expected code MISSING_AUTHORIZATION, got %s", env.Code)
	}
}

func TestBlogHTTP_SaveDraft_Create(t *testing.T) {
	h, _, tx := setupBlogHandler(t)

	var inserted blogdomain.Blog
	tx.insertFunc = func(ctx context.Context, blog blogdomain.Blog) error {
		inserted = blog
		return nil
	}

	token := tokenFor(t, ownerID, "alice")
	rec := doJSON(t, h, http.MethodPost, "/api/blogs/save-draft", token, map[string]string{
		"title": "Post",
		"tags":  "go",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body saveBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "draft saved" {
		t.Errorf("expected message 'draft saved', got %q", body.Message)
	}
	if body.Blog != inserted.ID {
		t.Errorf("expected returned id %s, got %s", inserted.ID, body.Blog)
	}
	if inserted.UserID != ownerID {
		t.Errorf("expected owner from token, got %s", inserted.UserID)
	}
}

func TestBlogHTTP_SaveDraft_BlankTitle(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	token := tokenFor(t, ownerID, "alice")
	rec := doJSON(t, h, http.MethodPost, "/api/blogs/save-draft", token, map[string]string{"title": "   "})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "TITLE_REQUIRED" {
		t.Errorf("expected code TITLE_REQUIRED, got %s", env.Code)
	}
}

func TestBlogHTTP_SaveDraft_InvalidStatus(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	token := tokenFor(t, ownerID, "alice")
	rec := doJSON(t, h, http.MethodPost, "/api/blogs/save-draft", token, map[string]string{
		"title":  "Post",
		"status": "archived",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBlogHTTP_SaveDraft_ForeignID(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	// Default tx mock reports not found for any owned lookup, covering
	// both a foreign and a nonexistent id.
	token := tokenFor(t, otherID, "mallory")
	rec := doJSON(t, h, http.MethodPost, "/api/blogs/save-draft", token, map[string]string{
		"id":    someBlogID,
		"title": "Hijack",
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if env := decodeEnvelope(t, rec); env.Code != "BLOG_FORBIDDEN" {
		t.Errorf("expected code BLOG_FORBIDDEN, got %s", env.Code)
	}
}

func TestBlogHTTP_Publish_MissingContent(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	token := tokenFor(t, ownerID, "alice")
	rec := doJSON(t, h, http.MethodPost, "/api/blogs/publish", token, map[string]string{"title": "Post"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "TITLE_CONTENT_REQUIRED" {
		t.Errorf("expected code TITLE_CONTENT_REQUIRED, got %s", env.Code)
	}
}

func TestBlogHTTP_Publish_Create(t *testing.T) {
	h, _, tx := setupBlogHandler(t)

	var inserted blogdomain.Blog
	tx.insertFunc = func(ctx context.Context, blog blogdomain.Blog) error {
		inserted = blog
		return nil
	}

	token := tokenFor(t, ownerID, "alice")
	rec := doJSON(t, h, http.MethodPost, "/api/blogs/publish", token, map[string]string{
		"title":   "Post",
		"content": "body",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body saveBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "blog published" {
		t.Errorf("expected message 'blog published', got %q", body.Message)
	}
	if inserted.Status != blogdomain.StatusPublished {
		t.Errorf("expected published, got %s", inserted.Status)
	}
}

func TestBlogHTTP_ListMine_RequiresAuth(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/blogs/my", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestBlogHTTP_ListMine(t *testing.T) {
	h, repo, _ := setupBlogHandler(t)

	repo.listByOwnerFunc = func(ctx context.Context, owner string) ([]blogdomain.Blog, error) {
		if owner != ownerID {
			t.Errorf("expected list for token owner, got %s", owner)
		}
		return []blogdomain.Blog{
			{ID: "a", Title: "Draft", Status: blogdomain.StatusDraft, UserID: ownerID},
		}, nil
	}

	token := tokenFor(t, ownerID, "alice")
	rec := doJSON(t, h, http.MethodGet, "/api/blogs/my", token, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var blogs []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&blogs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(blogs) != 1 || blogs[0]["status"] != "draft" {
		t.Errorf("expected one draft blog, got %+v", blogs)
	}
}

func TestBlogHTTP_ListPublished_Anonymous(t *testing.T) {
	h, repo, _ := setupBlogHandler(t)

	repo.listPublishedFunc = func(ctx context.Context) ([]blogdomain.BlogWithAuthor, error) {
		return []blogdomain.BlogWithAuthor{storedBlog(blogdomain.StatusPublished)}, nil
	}

	rec := doJSON(t, h, http.MethodGet, "/api/blogs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var blogs []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&blogs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(blogs) != 1 || blogs[0]["author"] != "alice" {
		t.Errorf("expected one blog with author alice, got %+v", blogs)
	}
}

func TestBlogHTTP_GetByID_DraftVisibility(t *testing.T) {
	h, repo, _ := setupBlogHandler(t)

	repo.findByIDWithAuthorFunc = func(ctx context.Context, id string) (blogdomain.BlogWithAuthor, error) {
		return storedBlog(blogdomain.StatusDraft), nil
	}

	// Anonymous and foreign callers are rejected identically.
	rec := doJSON(t, h, http.MethodGet, "/api/blogs/"+someBlogID, "", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous: expected status 403, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/blogs/"+someBlogID, tokenFor(t, otherID, "mallory"), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign caller: expected status 403, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/blogs/"+someBlogID, tokenFor(t, ownerID, "alice"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBlogHTTP_GetByID_GarbageTokenDegradesToAnonymous(t *testing.T) {
	h, repo, _ := setupBlogHandler(t)

	repo.findByIDWithAuthorFunc = func(ctx context.Context, id string) (blogdomain.BlogWithAuthor, error) {
		return storedBlog(blogdomain.StatusPublished), nil
	}

	rec := doJSON(t, h, http.MethodGet, "/api/blogs/"+someBlogID, "not-a-token", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public read to survive a bad token, got %d", rec.Code)
	}
}

func TestBlogHTTP_GetByID_InvalidID(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/blogs/not-a-uuid", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "INVALID_BLOG_ID_FORMAT" {
		t.Errorf("expected code INVALID_BLOG_ID_FORMAT, got %s", env.Code)
	}
}

func TestBlogHTTP_GetByID_Missing(t *testing.T) {
	h, _, _ := setupBlogHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/blogs/"+someBlogID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "BLOG_NOT_FOUND" {
		t.Errorf("expected code BLOG_NOT_FOUND, got %s", env.Code)
	}
}

func TestBlogHTTP_Delete(t *testing.T) {
	h, repo, _ := setupBlogHandler(t)

	repo.deleteOwnedFunc = func(ctx context.Context, id, owner string) (bool, error) {
		return owner == ownerID, nil
	}

	rec := doJSON(t, h, http.MethodDelete, "/api/blogs/"+someBlogID, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected status 401, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/blogs/"+someBlogID, tokenFor(t, otherID, "mallory"), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign caller: expected status 404, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/blogs/"+someBlogID, tokenFor(t, ownerID, "alice"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
