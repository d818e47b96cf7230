// utils/context.go
package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/logger"
)

// ActorKey is the gin context key holding the authenticated subject.
const ActorKey = "sub"

// GetActorFromContext returns the subject set by the auth middleware.
func GetActorFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(ActorKey)
	if !exists {
		return "", ErrUserIDNotFound
	}

	actor, ok := raw.(string)
	if !ok || actor == "" {
		logger.ErrorLogger.Errorf("Actor in context is not a string, actual type: %T", raw)
		return "", ErrUnauthorized
	}
	return actor, nil
}
