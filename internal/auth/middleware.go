package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"kinetica/internal/api"

	"github.com/gin-gonic/gin"
)

// TokenCheck runs after signature validation. A non-nil error rejects the
// request with 401.
type TokenCheck func(ctx context.Context, claims *JWTClaims) error

func AuthMiddleware(tokens *Tokens, checks ...TokenCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := bearerToken(c.GetHeader("Authorization"))
		if msg != "" {
			abortUnauthorized(c, msg)
			return
		}

		claims, err := tokens.ValidateAccess(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				abortUnauthorized(c, "Token expired")
			case errors.Is(err, ErrInvalidTokenType):
				abortUnauthorized(c, "Access token required")
			default:
				abortUnauthorized(c, "Could not validate credentials")
			}
			return
		}

		for _, check := range checks {
			if err := check(c.Request.Context(), claims); err != nil {
				if errors.Is(err, ErrTokenRevoked) {
					abortUnauthorized(c, "Token revoked")
				} else {
					abortUnauthorized(c, "User not found or inactive")
				}
				return
			}
		}

		SetIdentity(c, claims.Identity())
		c.Set(claimsKey, claims)

		c.Next()
	}
}

func RequireRole(requiredRole Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, exists := GetIdentity(c)
		if !exists {
			abortUnauthorized(c, "User not authenticated")
			return
		}

		if id.Role != requiredRole {
			msg := "Insufficient permissions"
			if requiredRole == RoleOwner {
				msg = "Owner access required"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: msg})
			return
		}

		c.Next()
	}
}

// RequireOwner is RequireRole(RoleOwner).
func RequireOwner() gin.HandlerFunc {
	return RequireRole(RoleOwner)
}

// bearerToken extracts the token from an Authorization header. A non-empty
// msg describes why the header was rejected.
func bearerToken(header string) (token, msg string) {
	if header == "" {
		return "", "Authorization header required"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(strings.TrimSpace(scheme), "Bearer") {
		return "", "Invalid authorization header format"
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", "Token is empty"
	}
	return token, ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: msg})
}
