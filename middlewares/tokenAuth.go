package middlewares

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"MediTrack/authz"
	"MediTrack/utils"
)

type contextKey string

const principalKey contextKey = "principal"

// TokenValidator validates access tokens.
type TokenValidator interface {
	ValidateToken(token string) (*utils.TokenClaims, error)
}

// TokenAuthMiddleware validates the access token and stores the caller's
// principal in the request context. The token is read from the
// Authorization header or, for download links, the accessToken query parameter.
func TokenAuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token == "" {
			HttpError(c, authz.Unauthenticated("missing access token"))
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			HttpError(c, authz.Unauthenticated("invalid or expired access token"))
			c.Abort()
			return
		}

		principal := &authz.Principal{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// Authorize rejects callers whose role may not perform act on obj.
func Authorize(authorizer *authz.Authorizer, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := ExtractPrincipalFromContext(c.Request.Context())
		if err := authorizer.Authorize(principal, obj, act); err != nil {
			HttpError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractAccessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("accessToken")
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *authz.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// ExtractPrincipalFromContext retrieves the authenticated caller.
func ExtractPrincipalFromContext(ctx context.Context) (*authz.Principal, error) {
	p, ok := ctx.Value(principalKey).(*authz.Principal)
	if !ok || p == nil {
		return nil, errors.New("principal not found in context")
	}
	return p, nil
}
