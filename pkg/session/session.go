package session

import (
	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// Headers injected by the authenticating gateway in front of this service.
const (
	userIDHeader = "X-Auth-User"
	roleHeader   = "X-Auth-Role"
)

type headerSession struct {
	logger lumber.Logger
}

// New returns a core.Session that trusts identity headers set by the
// upstream gateway.
func New(logger lumber.Logger) core.Session {
	return &headerSession{logger: logger}
}

func (s *headerSession) Authorize(c *gin.Context) (*core.UserClaims, error) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		return nil, errs.ErrUnauthorized
	}
	role := core.Role(c.GetHeader(roleHeader))
	if role != core.RoleAdmin {
		role = core.RoleUser
	}
	return &core.UserClaims{UserID: userID, Role: role}, nil
}
