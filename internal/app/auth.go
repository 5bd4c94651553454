package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type AuthConfig struct {
	StaticTokens []string
	JWTSecret    string
}

func (c AuthConfig) enabled() bool {
	return len(c.StaticTokens) > 0 || c.JWTSecret != ""
}

// Auth middleware supporting static tokens or JWT. With neither configured
// every request passes.
func AuthMiddleware(cfg AuthConfig, log *zap.Logger) gin.HandlerFunc {
	var staticTokens []string
	for _, t := range cfg.StaticTokens {
		if t = strings.TrimSpace(t); t != "" {
			staticTokens = append(staticTokens, t)
		}
	}
	cfg.StaticTokens = staticTokens
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	if !cfg.enabled() {
		log.Warn("authentication disabled: no static tokens or JWT secret configured")
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		tokenStr := parts[1]

		// JWT path
		if cfg.JWTSecret != "" {
			_, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenMalformed
				}
				return []byte(cfg.JWTSecret), nil
			}, jwt.WithLeeway(5*time.Second))
			if err == nil {
				c.Next()
				return
			}
			log.Debug("jwt rejected", zap.Error(err))
		}

		for _, t := range cfg.StaticTokens {
			if tokenStr == t {
				c.Next()
				return
			}
		}

		log.Warn("unauthorized request", zap.String("path", c.FullPath()), zap.String("ip", c.ClientIP()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	}
}
