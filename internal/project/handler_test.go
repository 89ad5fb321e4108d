package project

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalokdeep/workbench-api/internal/auth"
	"github.com/aalokdeep/workbench-api/internal/httpapi"
	"github.com/aalokdeep/workbench-api/internal/storage"
)

const testAdmin = "admin"

// stubIssuer records the requested key and returns canned credentials.
type stubIssuer struct {
	lastKey string
	err     error
}

func (s *stubIssuer) Issue(ctx context.Context, key string, expiry time.Duration) (*storage.UploadCredential, error) {
	s.lastKey = key
	if s.err != nil {
		return nil, s.err
	}
	return &storage.UploadCredential{
		SASURL:  "https://store.test/workbench/" + key + "?sig=abc",
		BlobURL: "https://store.test/workbench/" + key,
	}, nil
}

// countingRepo tracks how many store calls a request triggered.
type countingRepo struct {
	inner Repository
	calls int
}

func (r *countingRepo) List(ctx context.Context) ([]Card, error) {
	r.calls++
	return r.inner.List(ctx)
}
func (r *countingRepo) Get(ctx context.Context, id string) (*Project, error) {
	r.calls++
	return r.inner.Get(ctx, id)
}
func (r *countingRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.calls++
	return r.inner.Exists(ctx, id)
}
func (r *countingRepo) Create(ctx context.Context, p *Project) error {
	r.calls++
	return r.inner.Create(ctx, p)
}
func (r *countingRepo) Replace(ctx context.Context, p *Project) error {
	r.calls++
	return r.inner.Replace(ctx, p)
}

func newTestEngine(repo Repository, issuer storage.CredentialIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(httpapi.Middleware())
	g.HandleMethodNotAllowed = true
	g.NoMethod(func(c *gin.Context) {
		httpapi.Error(c, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
	})
	api := g.Group("/api")
	NewHandler(repo, issuer).Register(api, auth.RequireAdmin(auth.NewHandleAllowlist(testAdmin)))
	return g
}

func adminPrincipal(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(map[string]string{"userDetails": testAdmin})
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(b)
}

func doJSON(t *testing.T, g *gin.Engine, method, path, body string, asAdmin bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if asAdmin {
		req.Header.Set(auth.PrincipalHeader, adminPrincipal(t))
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

const validCreateBody = `{"id":"x","title":"T","description":"D","heroImage":{"url":"u","alt":"a"}}`

func TestCreateThenGetDefaultsOptionalFields(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})

	w := doJSON(t, g, http.MethodPost, "/api/projects", validCreateBody, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := parseEnvelope(t, w)
	require.True(t, env.Success)

	var created Project
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "x", created.ID)
	assert.NotNil(t, created.ProgressLog)
	assert.Empty(t, created.ProgressLog)
	assert.NotNil(t, created.Links)
	assert.NotNil(t, created.DetailImages)
	assert.NotNil(t, created.FutureConsiderations)

	w = doJSON(t, g, http.MethodGet, "/api/projects/x", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	env = parseEnvelope(t, w)
	var fetched Project
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created, fetched)
	// full read of a public project is edge-cacheable
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=3600")
}

func TestCreateMissingFieldsEnumerated(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})

	w := doJSON(t, g, http.MethodPost, "/api/projects", `{"title":"T"}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	assert.Contains(t, env.Error.Message, "id")
	assert.Contains(t, env.Error.Message, "description")
	assert.Contains(t, env.Error.Message, "heroImage")
	assert.NotContains(t, env.Error.Message, "title")
}

func TestCreateDuplicateLeavesExistingIntact(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})

	w := doJSON(t, g, http.MethodPost, "/api/projects", validCreateBody, true)
	require.Equal(t, http.StatusOK, w.Code)

	dup := `{"id":"x","title":"Other","description":"Other","heroImage":{"url":"o","alt":"o"}}`
	w = doJSON(t, g, http.MethodPost, "/api/projects", dup, true)
	require.Equal(t, http.StatusConflict, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, "DUPLICATE_ID", env.Error.Code)

	w = doJSON(t, g, http.MethodGet, "/api/projects/x", "", false)
	env = parseEnvelope(t, w)
	var p Project
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "T", p.Title)
}

func TestCreateRacerLosesToUniqueConstraint(t *testing.T) {
	// a repo whose Exists always reports false models the pre-check racing a
	// concurrent create; the store's duplicate error must still map to 409
	repo := &racingRepo{inner: NewMemoryRepository()}
	g := newTestEngine(repo, &stubIssuer{})

	w := doJSON(t, g, http.MethodPost, "/api/projects", validCreateBody, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, g, http.MethodPost, "/api/projects", validCreateBody, true)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_ID", parseEnvelope(t, w).Error.Code)
}

type racingRepo struct{ inner *MemoryRepository }

func (r *racingRepo) List(ctx context.Context) ([]Card, error)       { return r.inner.List(ctx) }
func (r *racingRepo) Get(ctx context.Context, id string) (*Project, error) {
	return r.inner.Get(ctx, id)
}
func (r *racingRepo) Exists(ctx context.Context, id string) (bool, error) { return false, nil }
func (r *racingRepo) Create(ctx context.Context, p *Project) error        { return r.inner.Create(ctx, p) }
func (r *racingRepo) Replace(ctx context.Context, p *Project) error       { return r.inner.Replace(ctx, p) }

func TestUpdateForcesIDFromPath(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})
	doJSON(t, g, http.MethodPost, "/api/projects", validCreateBody, true)

	w := doJSON(t, g, http.MethodPatch, "/api/projects/x", `{"id":"hijacked","title":"New title"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := parseEnvelope(t, w)
	var updated Project
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "x", updated.ID)
	assert.Equal(t, "New title", updated.Title)

	// untouched fields survive the merge
	assert.Equal(t, "D", updated.Description)

	w = doJSON(t, g, http.MethodGet, "/api/projects/hijacked", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateNotFound(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})

	w := doJSON(t, g, http.MethodPatch, "/api/projects/ghost", `{"title":"x"}`, true)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", parseEnvelope(t, w).Error.Code)
}

func TestListReturnsProjectionOnly(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})
	full := `{"id":"x","title":"T","description":"D","heroImage":{"url":"u","alt":"a"},` +
		`"detailedDescription":"long text","progressLog":[{"date":"2025-01-01","description":"started"}],` +
		`"links":[{"title":"repo","url":"https://example.com"}]}`
	doJSON(t, g, http.MethodPost, "/api/projects", full, true)

	w := doJSON(t, g, http.MethodGet, "/api/projects", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0]["id"])
	assert.NotContains(t, items[0], "detailedDescription")
	assert.NotContains(t, items[0], "progressLog")
	assert.NotContains(t, items[0], "links")
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=3600")
}

func TestGetNonexistent(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})

	w := doJSON(t, g, http.MethodGet, "/api/projects/nonexistent", "", false)
	require.Equal(t, http.StatusNotFound, w.Code)
	env := parseEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAdminRoutesRejectBeforeStoreAccess(t *testing.T) {
	repo := &countingRepo{inner: NewMemoryRepository()}
	g := newTestEngine(repo, &stubIssuer{})

	for _, rt := range []struct{ method, path, body string }{
		{http.MethodPost, "/api/projects", validCreateBody},
		{http.MethodPatch, "/api/projects/x", `{"title":"t"}`},
		{http.MethodPost, "/api/projects/x/upload-image-token", `{"filename":"a.png"}`},
	} {
		w := doJSON(t, g, rt.method, rt.path, rt.body, false)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
		assert.Equal(t, "UNAUTHORIZED", parseEnvelope(t, w).Error.Code)
	}
	assert.Zero(t, repo.calls, "unauthorized requests must not reach the store")
}

func TestUploadTokenValidation(t *testing.T) {
	issuer := &stubIssuer{}
	g := newTestEngine(NewMemoryRepository(), issuer)

	// disallowed extension
	w := doJSON(t, g, http.MethodPost, "/api/projects/x/upload-image-token", `{"filename":"photo.exe"}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILE", parseEnvelope(t, w).Error.Code)

	// extension check is case-insensitive
	w = doJSON(t, g, http.MethodPost, "/api/projects/x/upload-image-token", `{"filename":"photo.PNG"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := parseEnvelope(t, w)
	var cred storage.UploadCredential
	require.NoError(t, json.Unmarshal(env.Data, &cred))
	assert.Contains(t, cred.SASURL, "projects/x/photo.PNG")
	assert.Contains(t, cred.BlobURL, "projects/x/photo.PNG")
	assert.Equal(t, "projects/x/photo.PNG", issuer.lastKey)

	// missing filename
	w = doJSON(t, g, http.MethodPost, "/api/projects/x/upload-image-token", `{}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", parseEnvelope(t, w).Error.Code)
}

func TestUploadTokenRejectsPathSeparators(t *testing.T) {
	issuer := &stubIssuer{}
	g := newTestEngine(NewMemoryRepository(), issuer)

	for _, filename := range []string{"../hero.png", "a/b.png", `a\b.png`} {
		body, err := json.Marshal(map[string]string{"filename": filename})
		require.NoError(t, err)
		w := doJSON(t, g, http.MethodPost, "/api/projects/x/upload-image-token", string(body), true)
		require.Equal(t, http.StatusBadRequest, w.Code, filename)
		assert.Equal(t, "INVALID_FILE", parseEnvelope(t, w).Error.Code, filename)
	}
	assert.Empty(t, issuer.lastKey, "no credential may be issued for a traversing filename")
}

func TestUploadTokenSigningFailure(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{err: errors.New("signer down")})

	w := doJSON(t, g, http.MethodPost, "/api/projects/x/upload-image-token", `{"filename":"a.jpg"}`, true)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "TOKEN_ERROR", parseEnvelope(t, w).Error.Code)
}

func TestOptionsPreflightOnEveryRoute(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})

	for _, path := range []string{"/api/projects", "/api/projects/x", "/api/projects/x/upload-image-token"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "http://localhost:3000")
		g.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code, path)
		assert.Zero(t, w.Body.Len(), path)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	g := newTestEngine(NewMemoryRepository(), &stubIssuer{})

	w := doJSON(t, g, http.MethodDelete, "/api/projects/x", "", true)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", parseEnvelope(t, w).Error.Code)
}
