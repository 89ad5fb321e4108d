// Package httpapi implements the uniform JSON response envelope and the CORS
// policy shared by every API endpoint: {success:true,data} on success,
// {success:false,error:{code,message}} on failure, 204 for preflight.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowedOrigins is the fixed production origin allow-list. Any
// http://localhost:* origin is additionally echoed back for development.
var AllowedOrigins = []string{
	"https://aalokdeep.com",
	"https://www.aalokdeep.com",
	"https://workbench.aalokdeep.com",
}

const (
	allowedMethods  = "GET, POST, PATCH, DELETE, OPTIONS"
	allowedHeaders  = "Content-Type, Authorization, x-ms-client-principal"
	preflightMaxAge = "86400"

	// 1 hour, shared and edge-cacheable, for public read endpoints.
	cacheControl = "public, max-age=3600, s-maxage=3600"
)

// ErrorDetail is the machine-readable error payload.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type successBody struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorBody struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// AllowOrigin resolves the Access-Control-Allow-Origin value for a request
// origin: localhost origins echo back verbatim, allow-listed production
// origins echo back, anything else falls back to the first allow-listed
// domain. The fallback is a permissive default, not a security boundary; no
// response ever carries Allow-Credentials.
func AllowOrigin(origin string) string {
	if strings.HasPrefix(origin, "http://localhost:") {
		return origin
	}
	for _, o := range AllowedOrigins {
		if o == origin {
			return origin
		}
	}
	return AllowedOrigins[0]
}

func applyCORS(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", AllowOrigin(c.GetHeader("Origin")))
	h.Set("Access-Control-Allow-Methods", allowedMethods)
	h.Set("Access-Control-Allow-Headers", allowedHeaders)
	h.Set("Access-Control-Max-Age", preflightMaxAge)
}

// Middleware attaches CORS headers to every response and short-circuits
// OPTIONS preflight requests with 204 and no body.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		applyCORS(c)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Success writes a 200 envelope around data. When cached is true the response
// carries the public 1-hour cache directive used by the read endpoints.
func Success(c *gin.Context, data interface{}, cached bool) {
	if cached {
		c.Header("Cache-Control", cacheControl)
		c.Header("Vary", "Accept-Encoding")
	}
	c.JSON(http.StatusOK, successBody{Success: true, Data: data})
}

// Error writes the error envelope with the given machine code and aborts the
// handler chain.
func Error(c *gin.Context, code, message string, status int) {
	c.AbortWithStatusJSON(status, errorBody{Success: false, Error: ErrorDetail{Code: code, Message: message}})
}
