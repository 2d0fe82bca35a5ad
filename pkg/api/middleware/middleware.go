package middleware

import (
	"net/http"
	"strconv"

	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/gin-gonic/gin"
)

const (
	userClaimsKey = "userClaims"
	limitKey      = "limit"
	offsetKey     = "offset"
)

var strDefaultPerPageLimit = strconv.Itoa(constants.DefaultPageSize)

// HandleSession returns a middleware that resolves the caller identity
// and aborts unauthenticated requests.
func HandleSession(session core.Session, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := session.Authorize(c)
		if err != nil {
			logger.Errorf("failed to authorize request, %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrUnauthorized)
			return
		}
		c.Set(userClaimsKey, claims)
		c.Next()
	}
}

// HandleAdminRole returns a middleware that restricts the route to admins.
func HandleAdminRole(logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		contextValue, exists := c.Get(userClaimsKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrUnauthorized)
			return
		}
		claims, ok := contextValue.(*core.UserClaims)
		if !ok || claims.Role != core.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, errs.ErrForbidden)
			return
		}
		c.Next()
	}
}

// HandlePage set page parameters for paginated apis
func HandlePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		perPage := c.DefaultQuery("per_page", strDefaultPerPageLimit)
		limit, err := strconv.Atoi(perPage)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, errs.ErrPerPageVal)
			return
		}
		if limit < 1 {
			limit = constants.DefaultPageSize
		}
		if limit > constants.MaxPageSize {
			limit = constants.MaxPageSize
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, errs.ErrPageVal)
			return
		}
		if page < 1 {
			page = 1
		}
		c.Set(limitKey, limit)
		c.Set(offsetKey, (page-1)*limit)
		c.Next()
	}
}
