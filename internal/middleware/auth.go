package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"

	// SessionCookie carries the same token as the Authorization header for
	// browser clients.
	SessionCookie = "session"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, code := bearerOrCookie(c)
		if tokenString == "" {
			abortUnauthorized(c, code)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		userID, ok1 := claims["sub"].(string)
		username, _ := claims["username"].(string)
		if !ok1 || userID == "" {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, username)

		c.Next()
	}
}

func bearerOrCookie(c *gin.Context) (string, string) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "invalid_authorization_header"
		}
		return strings.TrimSpace(parts[1]), ""
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, ""
	}
	return "", "missing_credentials"
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}

// UserID returns the authenticated user id, or "" outside AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
