package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aalokdeep/workbench-api/internal/config"
)

// RegisterHealth mounts the diagnostics endpoints.
//
// GET /api/health reports which capabilities are configured (booleans only,
// never secret values) — useful for verifying a deployment's environment.
// GET /ready is the readiness probe: 200 once the process is serving.
func RegisterHealth(r *gin.Engine, cfg *config.Config, startTime time.Time) {
	r.GET("/api/health", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"environment": gin.H{
				"hasDatabaseURI":     cfg.MongoDB.URI != "",
				"hasStorageEndpoint": cfg.Storage.Endpoint != "",
				"hasStorageBucket":   cfg.Storage.Bucket != "",
				"hasAdminHandle":     cfg.Admin.Handle != "",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"uptime": time.Since(startTime).String(),
		})
	})
}
