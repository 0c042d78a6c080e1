package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserID is the context key under which AuthRequired stores the
	// authenticated user's ID.
	ContextUserID = "userID"
	// EnvKeyJWTSecret names the environment variable holding the HMAC signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"
)

// hmacKeyfunc accepts only HMAC-signed tokens and resolves them with secret.
func hmacKeyfunc(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}
}

// AuthRequired rejects requests that do not carry a valid Bearer access token.
// On success the token's subject is stored on the context under ContextUserID.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), hmacKeyfunc(secret))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			// JSONの数値はfloat64でデコードされる
			if sub, ok := claims["sub"].(float64); ok {
				c.Set(ContextUserID, uint(sub))
			}
		}
		c.Next()
	}
}
