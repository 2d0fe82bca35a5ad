package notification

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	apiutils "github.com/autoqa/autoqa/pkg/api/utils"
	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// HandleList returns the caller's notifications, newest first.
func HandleList(
	notificationStore core.NotificationStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := apiutils.CurrentClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, errs.ErrUnauthorized)
			return
		}
		limit, offset := apiutils.PageParams(c)
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		notifications, err := notificationStore.FindByUser(ctx, claims.UserID, offset, limit)
		if err != nil {
			logger.Errorf("error while listing notifications for user %s, %v", claims.UserID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}

// HandleMarkRead flags one of the caller's notifications as read.
func HandleMarkRead(
	notificationStore core.NotificationStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := apiutils.CurrentClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, errs.ErrUnauthorized)
			return
		}
		notificationID, err := strconv.ParseInt(c.Param("notificationID"), constants.Base10, constants.BitSize64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("notificationID"))
			return
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		if err := notificationStore.MarkRead(ctx, claims.UserID, notificationID); err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Notification", "id"))
				return
			}
			logger.Errorf("error while marking notification %d read for user %s, %v", notificationID, claims.UserID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification Marked As Read."})
	}
}
