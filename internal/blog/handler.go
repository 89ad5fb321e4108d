package blog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aalokdeep/workbench-api/internal/httpapi"
	"github.com/aalokdeep/workbench-api/pkg/logger"
)

// Handler serves the public, read-only blog endpoints.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/blogs", h.List)
	rg.GET("/blogs/:id", h.Get)
}

// List returns post cards sorted by createdAt descending, cached for 1 hour.
func (h *Handler) List(c *gin.Context) {
	cards, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("fetch blogs: %v", err)
		httpapi.Error(c, "FETCH_ERROR", "Failed to fetch blogs", http.StatusInternalServerError)
		return
	}
	httpapi.Success(c, cards, true)
}

// Get returns one full post, cached for 1 hour.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httpapi.Error(c, "INVALID_REQUEST", "Blog ID is required", http.StatusBadRequest)
		return
	}

	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpapi.Error(c, "NOT_FOUND", fmt.Sprintf("Blog with id '%s' not found", id), http.StatusNotFound)
			return
		}
		logger.Errorf("fetch blog %s: %v", id, err)
		httpapi.Error(c, "FETCH_ERROR", "Failed to fetch blog", http.StatusInternalServerError)
		return
	}
	httpapi.Success(c, p, true)
}
