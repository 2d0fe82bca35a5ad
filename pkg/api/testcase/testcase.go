package testcase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	apiutils "github.com/autoqa/autoqa/pkg/api/utils"
	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/gin-gonic/gin"
	"gopkg.in/guregu/null.v4/zero"
)

// HandleGenerate generates test case candidates for a user story. The
// candidates are returned to the client unsaved.
func HandleGenerate(
	generationService core.GenerationService,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqBody := &core.GenerationRequest{}
		if err := c.ShouldBindJSON(reqBody); err != nil {
			logger.Errorf("error while binding json, error: %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		if reqBody.Priority == "" {
			reqBody.Priority = core.PriorityMedium
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		candidates, err := generationService.Generate(ctx, reqBody)
		if err != nil {
			var parseErr *errs.GenerationParseError
			if errors.As(err, &parseErr) {
				logger.Errorf("completion response was not valid JSON")
				c.JSON(http.StatusInternalServerError, gin.H{"error": parseErr.Error(), "raw": parseErr.Raw})
				return
			}
			logger.Errorf("error while generating test cases, %v", err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"testCases": candidates})
	}
}

// HandleSave persists a batch of test cases with their steps. The batch is
// atomic, either every case is saved or none. A successful save records a
// notification for the user; notification failures do not fail the save.
func HandleSave(
	authoringStore core.AuthoringStore,
	notificationStore core.NotificationStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqBody := &core.SaveRequest{}
		if err := c.ShouldBindJSON(reqBody); err != nil {
			logger.Errorf("error while binding json, error: %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		projectID := zero.Int{}
		if reqBody.ProjectID != nil {
			projectID = zero.IntFrom(*reqBody.ProjectID)
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		ids, err := authoringStore.SaveBatch(ctx, projectID, reqBody.TestCases)
		if err != nil {
			logger.Errorf("error while saving test cases, %v", err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		if claims, claimsErr := apiutils.CurrentClaims(c); claimsErr == nil {
			notification := &core.Notification{
				UserID:  claims.UserID,
				Message: fmt.Sprintf("%d test cases were saved.", len(ids)),
			}
			if notifyErr := notificationStore.Create(ctx, notification); notifyErr != nil {
				logger.Warnf("error while recording save notification, %v", notifyErr)
			}
		}
		c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("%d Test Case Saved Successfully.", len(ids))})
	}
}

// HandleList returns test cases matching the query filters.
func HandleList(
	testCaseStore core.TestCaseStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := apiutils.PageParams(c)
		filters := &core.TestCaseFilters{
			Status:     c.Query("status"),
			Priority:   c.Query("priority"),
			SearchText: c.Query("text"),
			Offset:     offset,
			Limit:      limit,
		}
		if projectID := c.Query("projectId"); projectID != "" {
			id, err := strconv.ParseInt(projectID, constants.Base10, constants.BitSize64)
			if err != nil {
				c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("projectId"))
				return
			}
			filters.ProjectID = zero.IntFrom(id)
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		testCases, err := testCaseStore.FindAll(ctx, filters)
		if err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusOK, gin.H{"testCases": []*core.TestCase{}})
				return
			}
			logger.Errorf("error while listing test cases, %v", err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"testCases": testCases})
	}
}

// HandleDetails returns a single test case with its steps.
func HandleDetails(
	testCaseStore core.TestCaseStore,
	testStepStore core.TestStepStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caseID := c.Param("caseID")
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		testCase, err := testCaseStore.Find(ctx, caseID)
		if err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Test case", "id"))
				return
			}
			logger.Errorf("error while finding test case %s, %v", caseID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		steps, err := testStepStore.FindByCase(ctx, caseID)
		if err != nil {
			logger.Errorf("error while finding test steps for case %s, %v", caseID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		testCase.TestSteps = steps
		c.JSON(http.StatusOK, gin.H{"testCase": testCase})
	}
}

// HandleUpdate applies scalar changes to a test case and optionally replaces
// its steps.
func HandleUpdate(
	authoringStore core.AuthoringStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caseID := c.Param("caseID")
		reqBody := &core.TestCaseUpdate{}
		if err := c.ShouldBindJSON(reqBody); err != nil {
			logger.Errorf("error while binding json, error: %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		if err := authoringStore.Update(ctx, caseID, reqBody); err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Test case", "id"))
				return
			}
			logger.Errorf("error while updating test case %s, %v", caseID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Test Case Updated Successfully."})
	}
}

// HandleDelete removes a test case and its steps.
func HandleDelete(
	authoringStore core.AuthoringStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caseID := c.Param("caseID")
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		if err := authoringStore.Delete(ctx, caseID); err != nil {
			if errors.Is(err, errs.ErrRowsNotFound) {
				c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Test case", "id"))
				return
			}
			logger.Errorf("error while deleting test case %s, %v", caseID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Test Case Deleted Successfully."})
	}
}
