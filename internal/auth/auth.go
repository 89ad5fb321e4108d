// Package auth decides whether a request carries a trusted admin identity.
//
// The hosting platform injects the authenticated principal as the
// x-ms-client-principal header (base64-encoded JSON). Admin access is granted
// when the decoded principal's userDetails equals the configured handle.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

// PrincipalHeader is the platform-injected identity header.
const PrincipalHeader = "x-ms-client-principal"

// Result is the outcome of an authorization check.
type Result struct {
	Authorized bool
	User       string
	Error      string
}

// Authorizer is the identity-verification seam used by the admin middleware.
// The production implementation is an allow-list of size one; a multi-admin
// model is a drop-in replacement.
type Authorizer interface {
	Authorize(r *http.Request) Result
}

// HandleAllowlist authorizes exactly one handle.
type HandleAllowlist struct {
	Admin string
}

func NewHandleAllowlist(admin string) HandleAllowlist {
	return HandleAllowlist{Admin: admin}
}

type clientPrincipal struct {
	UserDetails string `json:"userDetails"`
}

// Authorize validates the principal header. It fails closed: a missing header
// or any decode/parse failure yields an unauthorized result, never a panic.
func (a HandleAllowlist) Authorize(r *http.Request) Result {
	raw := r.Header.Get(PrincipalHeader)
	if raw == "" {
		return Result{Authorized: false, Error: "Authentication required. Please log in."}
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return Result{Authorized: false, Error: "Invalid authentication token."}
	}
	var principal clientPrincipal
	if err := json.Unmarshal(decoded, &principal); err != nil {
		return Result{Authorized: false, Error: "Invalid authentication token."}
	}

	if principal.UserDetails != a.Admin {
		return Result{Authorized: false, Error: fmt.Sprintf("Unauthorized. Only %s can perform this action.", a.Admin)}
	}

	return Result{Authorized: true, User: principal.UserDetails}
}
