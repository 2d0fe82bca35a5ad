package project

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

func projectIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("projectID"), constants.Base10, constants.BitSize64)
}

// HandleCreate creates a new project owned by the caller.
func HandleCreate(
	projectStore core.ProjectStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqBody := &core.Project{}
		if err := c.ShouldBindJSON(reqBody); err != nil {
			logger.Errorf("error while binding json, error: %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		claims, err := apiutils.CurrentClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, errs.ErrUnauthorized)
			return
		}
		reqBody.CreatedBy = claims.UserID
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		projectID, err := projectStore.Create(ctx, reqBody)
		if err != nil {
			if errors.Is(err, errs.ErrDupeKey) {
				c.JSON(http.StatusConflict, errs.New("Project with this name already exists."))
				return
			}
			logger.Errorf("error while creating project, %v", err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": projectID, "message": "Project Created Successfully."})
	}
}

// HandleList returns all projects, newest first.
func HandleList(
	projectStore core.ProjectStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := apiutils.PageParams(c)
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		projects, err := projectStore.FindAll(ctx, offset, limit)
		if err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusOK, gin.H{"projects": []*core.Project{}})
				return
			}
			logger.Errorf("error while listing projects, %v", err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
	}
}

// HandleDetails returns a single project.
func HandleDetails(
	projectStore core.ProjectStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("projectID"))
			return
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		project, err := projectStore.Find(ctx, projectID)
		if err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Project", "id"))
				return
			}
			logger.Errorf("error while finding project %d, %v", projectID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"project": project})
	}
}

// HandleUpdate applies the given changes to a project.
func HandleUpdate(
	projectStore core.ProjectStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("projectID"))
			return
		}
		reqBody := &core.ProjectUpdate{}
		if err := c.ShouldBindJSON(reqBody); err != nil {
			logger.Errorf("error while binding json, error: %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		if err := projectStore.Update(ctx, projectID, reqBody); err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Project", "id"))
				return
			}
			logger.Errorf("error while updating project %d, %v", projectID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Project Updated Successfully."})
	}
}

// HandleDelete removes a project. Its test cases are kept and detached.
func HandleDelete(
	projectStore core.ProjectStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("projectID"))
			return
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		if err := projectStore.Delete(ctx, projectID); err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Project", "id"))
				return
			}
			logger.Errorf("error while deleting project %d, %v", projectID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Project Deleted Successfully."})
	}
}
