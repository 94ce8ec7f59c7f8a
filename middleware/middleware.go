package middleware

import (
	"context"
	"fmt"
	"net/http"

	"agrimart/globals"
	"agrimart/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Username   string        `json:"username"`
	UserID     string        `json:"userId"`
	Roles      []models.Role `json:"roles"`
	ActiveRole models.Role   `json:"activeRole"`
	jwt.RegisteredClaims
}

// HasRole reports whether the caller holds the role, active or not.
func (c *Claims) HasRole(r models.Role) bool {
	return hasRole(c.Roles, r)
}

// Authenticator verifies bearer tokens. The secret is injected at
// startup instead of living in a package global.
type Authenticator struct {
	Secret []byte
}

func NewAuthenticator(cfg globals.Config) *Authenticator {
	return &Authenticator{Secret: cfg.JwtSecret}
}

func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := a.ValidateJWT(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.ClaimsKey, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireRoles gates a handler on the caller's active role. The claims
// must already be in context, so this always sits after Authenticate.
func (a *Authenticator) RequireRoles(roles ...models.Role) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, ok := r.Context().Value(globals.ClaimsKey).(*Claims)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.ActiveRole == role || hasRole(claims.Roles, models.RoleAdmin) {
					next(w, r, ps)
					return
				}
			}
			http.Error(w, "Forbidden for active role", http.StatusForbidden)
		}
	}
}

// ValidateJWT parses a raw Authorization header value.
func (a *Authenticator) ValidateJWT(header string) (*Claims, error) {
	if len(header) < 8 || header[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (any, error) {
		return a.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized")
	}
	return claims, nil
}

// Chain composes middleware right to left around a handler.
func Chain(wrappers ...func(httprouter.Handle) httprouter.Handle) func(httprouter.Handle) httprouter.Handle {
	return func(h httprouter.Handle) httprouter.Handle {
		for i := len(wrappers) - 1; i >= 0; i-- {
			h = wrappers[i](h)
		}
		return h
	}
}

func hasRole(roles []models.Role, r models.Role) bool {
	for _, held := range roles {
		if held == r {
			return true
		}
	}
	return false
}

// ClaimsFromRequest pulls the verified claims set by Authenticate.
func ClaimsFromRequest(r *http.Request) (*Claims, bool) {
	claims, ok := r.Context().Value(globals.ClaimsKey).(*Claims)
	return claims, ok
}
