package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the content API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>workbench-api — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the content API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "workbench-api", "version": "v1" },
  "paths": {
    "/api/projects": {
      "get": { "summary": "List projects (card fields, cached 1h)", "responses": { "200": {"description": "envelope with project cards"} } },
      "post": { "summary": "Create project (admin only)", "responses": { "200": {"description": "envelope with created project"}, "400": {"description": "missing fields"}, "401": {"description": "unauthorized"}, "409": {"description": "duplicate id"} } }
    },
    "/api/projects/{id}": {
      "get": { "summary": "Full project document (cached 1h)", "responses": { "200": {"description": "envelope with project"}, "404": {"description": "not found"} } },
      "patch": { "summary": "Merge-update project (admin only; id immutable)", "responses": { "200": {"description": "envelope with updated project"}, "401": {"description": "unauthorized"}, "404": {"description": "not found"} } }
    },
    "/api/projects/{id}/upload-image-token": {
      "post": { "summary": "Mint 1h signed upload URL for one image (admin only)", "responses": { "200": {"description": "envelope with sasUrl and blobUrl"}, "400": {"description": "invalid filename or extension"}, "401": {"description": "unauthorized"} } }
    },
    "/api/blogs": {
      "get": { "summary": "List blog posts, newest first (cached 1h)", "responses": { "200": {"description": "envelope with post cards"} } }
    },
    "/api/blogs/{id}": {
      "get": { "summary": "Full blog post (cached 1h)", "responses": { "200": {"description": "envelope with post"}, "404": {"description": "not found"} } }
    },
    "/api/health": {
      "get": { "summary": "Environment diagnostics", "responses": { "200": {"description": "status and configured capabilities"} } }
    }
  }
}`
