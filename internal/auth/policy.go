package auth

import (
	"net/http"
	"strings"

	"github.com/devhub/backend/internal/models"
)

// Decision is the outcome of evaluating the policy for one request
type Decision int

// Decision values
const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionForbidden
)

// accessKind classifies what a rule demands from the caller
type accessKind int

const (
	accessPublic accessKind = iota
	accessAuthenticated
	accessRole
)

// Access is the requirement side of a rule
type Access struct {
	kind accessKind
	role models.Role
}

// Public allows any caller
var Public = Access{kind: accessPublic}

// Authenticated requires a resolved principal
var Authenticated = Access{kind: accessAuthenticated}

// RequireRole requires a resolved principal with exactly the given role
func RequireRole(role models.Role) Access {
	return Access{kind: accessRole, role: role}
}

// Rule maps a (method, path pattern) pair to an access requirement.
// Method "*" matches any method. A pattern ending in "/**" matches the base
// path and everything below it; "**" alone matches every path; anything else
// is an exact match.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

// Policy is an ordered route-permission table, evaluated first match wins
type Policy struct {
	rules []Rule
}

// NewPolicy creates a policy from an ordered rule set
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultRules is the route-permission table this backend enforces.
// Order matters: write rules for articles and forum must come before the
// catch-all, and the catch-all keeps unlisted routes public.
func DefaultRules() []Rule {
	return []Rule{
		{Method: http.MethodPost, Pattern: "/api/auth/**", Access: Public},
		{Method: http.MethodGet, Pattern: "/api/articles/**", Access: Public},
		{Method: http.MethodGet, Pattern: "/api/categories/**", Access: Public},
		{Method: http.MethodGet, Pattern: "/api/tags/**", Access: Public},
		{Method: http.MethodGet, Pattern: "/api/forum/**", Access: Public},
		{Method: http.MethodGet, Pattern: "/api/stats", Access: Public},
		{Method: http.MethodPost, Pattern: "/api/articles/**", Access: Authenticated},
		{Method: http.MethodPost, Pattern: "/api/forum/**", Access: Authenticated},
		{Method: "*", Pattern: "/api/users/me", Access: Authenticated},
		{Method: "*", Pattern: "**", Access: Public},
	}
}

// Evaluate returns the decision for a request with the given principal
func (p *Policy) Evaluate(method, path string, principal *models.User) Decision {
	for _, rule := range p.rules {
		if rule.Method != "*" && rule.Method != method {
			continue
		}
		if !matchPattern(rule.Pattern, path) {
			continue
		}

		switch rule.Access.kind {
		case accessPublic:
			return DecisionAllow
		case accessAuthenticated:
			if principal == nil {
				return DecisionUnauthenticated
			}
			return DecisionAllow
		case accessRole:
			if principal == nil {
				return DecisionUnauthenticated
			}
			if principal.Role != rule.Access.role {
				return DecisionForbidden
			}
			return DecisionAllow
		}
	}

	// No rule matched; the declared table always ends in a catch-all,
	// so this is only reachable with a custom rule set.
	return DecisionAllow
}

// Middleware gates requests through the policy after the authenticator has run
func (p *Policy) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFromContext(r.Context())

			switch p.Evaluate(r.Method, r.URL.Path, principal) {
			case DecisionUnauthenticated:
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			case DecisionForbidden:
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchPattern reports whether a rule pattern matches a request path
func matchPattern(pattern, path string) bool {
	if pattern == "**" {
		return true
	}
	if base, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == base || strings.HasPrefix(path, base+"/")
	}
	return pattern == path
}
