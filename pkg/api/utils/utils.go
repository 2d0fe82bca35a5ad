package utils

import (
	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/gin-gonic/gin"
)

const userClaimsKey = "userClaims"

// CurrentClaims returns the claims set by the session middleware.
func CurrentClaims(c *gin.Context) (*core.UserClaims, error) {
	contextValue, exists := c.Get(userClaimsKey)
	if !exists {
		return nil, errs.ErrUnauthorized
	}
	claims, ok := contextValue.(*core.UserClaims)
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}

// PageParams returns the limit and offset set by the pagination middleware,
// falling back to the defaults when the middleware did not run.
func PageParams(c *gin.Context) (limit, offset int) {
	limit = constants.DefaultPageSize
	if v, exists := c.Get("limit"); exists {
		if l, ok := v.(int); ok {
			limit = l
		}
	}
	if v, exists := c.Get("offset"); exists {
		if o, ok := v.(int); ok {
			offset = o
		}
	}
	return limit, offset
}
