package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/utils"
	"github.com/joy095/propertyops/utils/response"
)

// AuthMiddleware requires an HS256 bearer token signed with secret and puts
// its subject in the context. With an empty secret auth is disabled and every
// request passes.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	if len(secret) == 0 {
		logger.WarnLogger.Warn("JWT_SECRET is empty; write endpoints are not authenticated")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.WarnLogger.Warn("No authorization header provided")
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "no authorization token")
			return
		}
		if len(authHeader) <= 7 || !strings.EqualFold(authHeader[:7], "bearer ") {
			logger.WarnLogger.Warn("Invalid authorization header format")
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid authorization format")
			return
		}

		token, err := parser.Parse(authHeader[7:], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.WarnLogger.Warnf("Failed to parse JWT token: %v", err)
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token")
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			logger.WarnLogger.Warn("No subject found in token")
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token claims")
			return
		}

		c.Set(utils.ActorKey, sub)
		c.Next()
	}
}
