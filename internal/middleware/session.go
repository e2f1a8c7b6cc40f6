package middleware

import (
	"net/http"
	"time"

	"repairs/internal/apierror"
	"repairs/internal/model"

	"github.com/gin-gonic/gin"
)

// SessionReader is the part of the session store the guards need.
type SessionReader interface {
	IsAuthenticated() bool
	AccessTokenExpiry() (time.Time, bool)
	Role() *model.Role
}

// RequireSession rejects requests while nobody is signed in, or once the
// access token's exp claim has passed so the caller knows to refresh.
func RequireSession(s SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}
		if exp, ok := s.AccessTokenExpiry(); ok && time.Now().After(exp) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Session expired, refresh or sign in again"))
			return
		}
		c.Next()
	}
}

// RequirePermission rejects requests when the signed-in role lacks every one
// of the given permissions.
func RequirePermission(s SessionReader, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := s.Role()
		if role != nil {
			for _, p := range permissions {
				if role.Can(p) {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
	}
}
