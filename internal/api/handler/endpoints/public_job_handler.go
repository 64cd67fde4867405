package endpoints

import (
	"errors"
	"net/http"

	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type publicJobHandler struct {
	jobService *service.JobService
	logger     zerolog.Logger
}

// PublicJobHandler registers the anonymous job listing and detail routes.
// Every job leaving here is a response.PublicJob.
func PublicJobHandler(router gin.IRouter, jobService *service.JobService, logger zerolog.Logger) {
	h := &publicJobHandler{jobService: jobService, logger: logger}

	routes := router.Group("/api/v1/jobs")
	{
		routes.GET("", h.list)
		routes.GET("/:id", h.get)
	}
}

func (slf *publicJobHandler) list(c *gin.Context) {
	jobs, err := slf.jobService.ListPublicJobs(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (slf *publicJobHandler) get(c *gin.Context) {
	job, err := slf.jobService.GetPublicJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve job"})
		return
	}
	c.JSON(http.StatusOK, job)
}
