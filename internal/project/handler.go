package project

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aalokdeep/workbench-api/internal/httpapi"
	"github.com/aalokdeep/workbench-api/internal/storage"
	"github.com/aalokdeep/workbench-api/pkg/logger"
)

const uploadTokenExpiry = time.Hour

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Handler serves the project CRUD endpoints and the upload-token side channel.
type Handler struct {
	repo   Repository
	issuer storage.CredentialIssuer
}

func NewHandler(repo Repository, issuer storage.CredentialIssuer) *Handler {
	return &Handler{repo: repo, issuer: issuer}
}

// Register mounts the project routes. requireAdmin guards every mutation.
func (h *Handler) Register(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.GET("/projects", h.List)
	rg.POST("/projects", requireAdmin, h.Create)
	rg.GET("/projects/:id", h.Get)
	rg.PATCH("/projects/:id", requireAdmin, h.Update)
	rg.POST("/projects/:id/upload-image-token", requireAdmin, h.UploadImageToken)
}

// List returns the card projection for every project, cached for 1 hour.
func (h *Handler) List(c *gin.Context) {
	cards, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("fetch projects: %v", err)
		httpapi.Error(c, "FETCH_ERROR", fmt.Sprintf("Failed to fetch projects: %v", err), http.StatusInternalServerError)
		return
	}
	httpapi.Success(c, cards, true)
}

type createProjectRequest struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	HeroImage            *HeroImage         `json:"heroImage"`
	DetailedDescription  string             `json:"detailedDescription"`
	ProgressLog          []ProgressLogEntry `json:"progressLog"`
	Links                []Link             `json:"links"`
	DetailImages         []DetailImage      `json:"detailImages"`
	FutureConsiderations []string           `json:"futureConsiderations"`
}

// Create inserts a new project. Required fields are enumerated in the 400
// response; omitted optional fields default to empty so stored documents are
// always fully shaped.
func (h *Handler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Error(c, "INVALID_REQUEST", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	var missing []string
	if req.ID == "" {
		missing = append(missing, "id")
	}
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.HeroImage == nil {
		missing = append(missing, "heroImage")
	}
	if len(missing) > 0 {
		httpapi.Error(c, "INVALID_REQUEST", "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	exists, err := h.repo.Exists(ctx, req.ID)
	if err != nil {
		logger.Errorf("create project %s: existence check: %v", req.ID, err)
		httpapi.Error(c, "CREATE_ERROR", "Failed to create project", http.StatusInternalServerError)
		return
	}
	if exists {
		httpapi.Error(c, "DUPLICATE_ID", fmt.Sprintf("Project with id '%s' already exists", req.ID), http.StatusConflict)
		return
	}

	p := &Project{
		ID:                   req.ID,
		Title:                req.Title,
		Description:          req.Description,
		HeroImage:            *req.HeroImage,
		DetailedDescription:  req.DetailedDescription,
		ProgressLog:          orEmpty(req.ProgressLog),
		Links:                orEmpty(req.Links),
		DetailImages:         orEmpty(req.DetailImages),
		FutureConsiderations: orEmpty(req.FutureConsiderations),
	}

	if err := h.repo.Create(ctx, p); err != nil {
		// the existence pre-check races with concurrent creates; the store's
		// unique index reports the loser here
		if errors.Is(err, ErrDuplicateID) {
			httpapi.Error(c, "DUPLICATE_ID", fmt.Sprintf("Project with id '%s' already exists", req.ID), http.StatusConflict)
			return
		}
		logger.Errorf("create project %s: %v", req.ID, err)
		httpapi.Error(c, "CREATE_ERROR", "Failed to create project", http.StatusInternalServerError)
		return
	}

	logger.Infof("project created: %s", p.ID)
	httpapi.Success(c, p, false)
}

// Get returns one full project document, cached for 1 hour.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httpapi.Error(c, "INVALID_REQUEST", "Project ID is required", http.StatusBadRequest)
		return
	}

	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpapi.Error(c, "NOT_FOUND", fmt.Sprintf("Project with id '%s' not found", id), http.StatusNotFound)
			return
		}
		logger.Errorf("fetch project %s: %v", id, err)
		httpapi.Error(c, "FETCH_ERROR", "Failed to fetch project details", http.StatusInternalServerError)
		return
	}
	httpapi.Success(c, p, true)
}

// Update shallow-merges the request body over the stored document and
// replaces it. The document id always comes from the path parameter; a
// conflicting id in the body is overridden.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httpapi.Error(c, "INVALID_REQUEST", "Project ID is required", http.StatusBadRequest)
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		httpapi.Error(c, "INVALID_REQUEST", "Request body must be valid JSON", http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpapi.Error(c, "NOT_FOUND", fmt.Sprintf("Project with id '%s' not found", id), http.StatusNotFound)
			return
		}
		logger.Errorf("update project %s: fetch: %v", id, err)
		httpapi.Error(c, "UPDATE_ERROR", "Failed to update project", http.StatusInternalServerError)
		return
	}

	existingMap, err := toMap(existing)
	if err != nil {
		logger.Errorf("update project %s: encode: %v", id, err)
		httpapi.Error(c, "UPDATE_ERROR", "Failed to update project", http.StatusInternalServerError)
		return
	}

	updated, err := fromMap(MergePatch(existingMap, patch, id))
	if err != nil {
		httpapi.Error(c, "INVALID_REQUEST", "Request fields do not match the project schema", http.StatusBadRequest)
		return
	}

	if err := h.repo.Replace(ctx, updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpapi.Error(c, "NOT_FOUND", fmt.Sprintf("Project with id '%s' not found", id), http.StatusNotFound)
			return
		}
		logger.Errorf("update project %s: replace: %v", id, err)
		httpapi.Error(c, "UPDATE_ERROR", "Failed to update project", http.StatusInternalServerError)
		return
	}

	logger.Infof("project updated: %s", id)
	httpapi.Success(c, updated, false)
}

type uploadTokenRequest struct {
	Filename string `json:"filename"`
}

// UploadImageToken mints a 1-hour signed upload credential for one image
// under projects/{id}/. The client uploads directly to storage; image bytes
// never pass through this API.
func (h *Handler) UploadImageToken(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httpapi.Error(c, "INVALID_REQUEST", "Project ID is required", http.StatusBadRequest)
		return
	}

	var req uploadTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" {
		httpapi.Error(c, "INVALID_REQUEST", "Filename is required", http.StatusBadRequest)
		return
	}

	// the filename becomes the last segment of the object key; separators
	// would let a caller escape the project's prefix
	if strings.ContainsAny(req.Filename, "/\\") {
		httpapi.Error(c, "INVALID_FILE", "Filename must not contain path separators", http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !isAllowedImageExtension(ext) {
		httpapi.Error(c, "INVALID_FILE",
			"Invalid file type. Allowed: "+strings.Join(allowedImageExtensions, ", "),
			http.StatusBadRequest)
		return
	}

	if h.issuer == nil {
		logger.Errorf("upload token for %s: storage not configured", id)
		httpapi.Error(c, "TOKEN_ERROR", "Failed to generate upload token", http.StatusInternalServerError)
		return
	}

	key := fmt.Sprintf("projects/%s/%s", id, req.Filename)
	cred, err := h.issuer.Issue(c.Request.Context(), key, uploadTokenExpiry)
	if err != nil {
		logger.Errorf("upload token for %s: %v", key, err)
		httpapi.Error(c, "TOKEN_ERROR", "Failed to generate upload token", http.StatusInternalServerError)
		return
	}

	logger.Infof("issued upload token for %s", key)
	httpapi.Success(c, cred, false)
}

func isAllowedImageExtension(ext string) bool {
	for _, allowed := range allowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
