package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/NabsK/hr-admin-system/internal/models"
	"github.com/NabsK/hr-admin-system/internal/service"
	"github.com/NabsK/hr-admin-system/internal/utils"
)

const (
	ContextEmployeeID = "employeeId"
	ContextRole       = "role"
)

// AuthRequired rejects requests without a valid bearer token before any
// handler or service code runs. On success the caller identity is stored in
// the request context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &utils.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(*utils.AccessClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		employeeID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		c.Set(ContextEmployeeID, uint(employeeID))
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// CallerIdentity extracts the identity stored by AuthRequired.
func CallerIdentity(c *gin.Context) (service.Identity, bool) {
	id, ok := c.Get(ContextEmployeeID)
	if !ok {
		return service.Identity{}, false
	}
	role, ok := c.Get(ContextRole)
	if !ok {
		return service.Identity{}, false
	}

	employeeID, ok := id.(uint)
	if !ok {
		return service.Identity{}, false
	}
	callerRole, ok := role.(models.Role)
	if !ok {
		return service.Identity{}, false
	}

	return service.Identity{EmployeeID: employeeID, Role: callerRole}, true
}
