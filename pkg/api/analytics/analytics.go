package analytics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/gin-gonic/gin"
	"gopkg.in/guregu/null.v4/zero"
)

const dateLayout = "2006-01-02"

func projectFilter(c *gin.Context) (zero.Int, error) {
	projectID := c.Query("projectId")
	if projectID == "" {
		return zero.Int{}, nil
	}
	id, err := strconv.ParseInt(projectID, constants.Base10, constants.BitSize64)
	if err != nil {
		return zero.Int{}, err
	}
	return zero.IntFrom(id), nil
}

// HandleStatusData returns per-day test case counts by status for the
// dashboard graph.
func HandleStatusData(
	testCaseStore core.TestCaseStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("projectId"))
			return
		}
		endDate := time.Now()
		startDate := endDate.AddDate(0, 0, -constants.GraphVisualizationDayCount)
		if v := c.Query("start_date"); v != "" {
			startDate, err = time.Parse(dateLayout, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("start_date"))
				return
			}
		}
		if v := c.Query("end_date"); v != "" {
			endDate, err = time.Parse(dateLayout, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("end_date"))
				return
			}
		}
		if endDate.Before(startDate) {
			c.JSON(http.StatusBadRequest, errs.ErrInvalidDate)
			return
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		counts, err := testCaseStore.FindDailyStatusCounts(ctx, projectID, startDate, endDate)
		if err != nil {
			logger.Errorf("error while finding daily status counts, %v", err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"statusData": counts})
	}
}

// HandlePriorityData returns test case counts per priority for the
// dashboard graph.
func HandlePriorityData(
	testCaseStore core.TestCaseStore,
	logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, errs.InvalidQueryErr("projectId"))
			return
		}
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		counts, err := testCaseStore.FindPriorityCounts(ctx, projectID)
		if err != nil {
			logger.Errorf("error while finding priority counts, %v", err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		c.JSON(http.StatusOK, gin.H{"priorityData": counts})
	}
}
