package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/service"
	"github.com/gin-gonic/gin"
)

// CtxUserID is the gin context key holding the authenticated user's id.
const CtxUserID = "userID"

// Auth enforces a bearer access token. A 401 with the "session expired"
// message is the signal clients listen for to force re-authentication.
func Auth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("missing bearer token"))
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "), service.TokenKindAccess)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				message = "session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(message))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// UserID reads the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
