package core

import "github.com/gin-gonic/gin"

// UserClaims is the identity attached to an authorized request.
type UserClaims struct {
	UserID string
	Role   Role
}

// Session extracts the caller identity from an incoming request.
type Session interface {
	Authorize(c *gin.Context) (*UserClaims, error)
}
