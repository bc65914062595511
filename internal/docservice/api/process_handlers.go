package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProcessHandler dispatches a processing run for a document. A second
// request while a run is active returns the existing job with 200
// instead of starting another.
func (a *API) ProcessHandler(c *gin.Context) {
	job, created, err := a.service.Process(c.Request.Context(), orgID(c), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}

	status := http.StatusAccepted
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"jobId": job.ID, "status": job.Status})
}

// ProcessStatusHandler reports the latest processing run of a
// document.
func (a *API) ProcessStatusHandler(c *gin.Context) {
	job, err := a.service.ProcessStatus(c.Request.Context(), orgID(c), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobId":       job.ID,
		"status":      job.Status,
		"stage":       job.Stage,
		"progress":    job.Progress,
		"error":       job.Error,
		"startedAt":   job.StartedAt,
		"completedAt": job.CompletedAt,
	})
}

// RetryJobsHandler re-dispatches every failed job of the organization.
func (a *API) RetryJobsHandler(c *gin.Context) {
	jobs, err := a.service.RetryFailed(c.Request.Context(), orgID(c))
	if err != nil {
		a.fail(c, err)
		return
	}

	jobIDs := make([]string, len(jobs))
	for i, j := range jobs {
		jobIDs[i] = j.ID
	}
	c.JSON(http.StatusAccepted, gin.H{"retried": len(jobs), "jobIds": jobIDs})
}
