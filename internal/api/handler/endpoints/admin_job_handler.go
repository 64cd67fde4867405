package endpoints

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"jobsite/internal/api/handler/mapper"
	"jobsite/internal/api/handler/middleware"
	"jobsite/internal/api/handler/request"
	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/service"
	"jobsite/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type adminJobHandler struct {
	jobService     *service.JobService
	clientService  *service.ClientService
	uploadMaxBytes int64
	logger         zerolog.Logger
}

// formOverhead is the room left for the text fields and multipart framing of a
// job form on top of the PDF itself.
const formOverhead = 1 << 20

// AdminConfig configures the back office routes.
type AdminConfig struct {
	JWTSecret      string
	UploadMaxBytes int64
}

// AdminJobHandler registers the back office routes. The whole group is gated
// by the admin guard; the services check it again on every mutation.
func AdminJobHandler(router gin.IRouter, jobService *service.JobService, clientService *service.ClientService, guard *service.Guard, cfg AdminConfig, logger zerolog.Logger) {
	h := &adminJobHandler{
		jobService:     jobService,
		clientService:  clientService,
		uploadMaxBytes: cfg.UploadMaxBytes,
		logger:         logger,
	}

	var bodyLimit int64
	if cfg.UploadMaxBytes > 0 {
		bodyLimit = cfg.UploadMaxBytes + formOverhead
	}
	limitForm := middleware.BodyLimit(bodyLimit)

	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.Identity(cfg.JWTSecret))
	admin.Use(middleware.RequireAdmin(guard))
	{
		admin.GET("/jobs", h.list)
		admin.GET("/jobs/:id", h.get)
		admin.POST("/jobs", limitForm, h.create)
		admin.PUT("/jobs/:id", limitForm, h.update)
		admin.DELETE("/jobs/:id", h.delete)

		admin.GET("/clients", h.listClients)
		admin.POST("/clients", h.createClient)
	}
}

func (slf *adminJobHandler) list(c *gin.Context) {
	jobs, err := slf.jobService.ListJobs(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, mapper.ToAdminJobs(jobs))
}

func (slf *adminJobHandler) get(c *gin.Context) {
	job, err := slf.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, mapper.ToAdminJob(job))
}

func (slf *adminJobHandler) create(c *gin.Context) {
	var form request.JobForm
	if err := c.ShouldBind(&form); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse create job form")
		writeFormError(c, err)
		return
	}

	upload, closeUpload, err := slf.formUpload(c)
	if err != nil {
		writeFormError(c, err)
		return
	}
	defer closeUpload()

	created, err := slf.jobService.Create(c.Request.Context(), mapper.FormToJobInput(form), upload)
	if err != nil {
		writeActionError(c, slf.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.JobCreated{Success: true, ID: created.ID, JobCode: created.JobCode})
}

func (slf *adminJobHandler) update(c *gin.Context) {
	var form request.JobForm
	if err := c.ShouldBind(&form); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse update job form")
		writeFormError(c, err)
		return
	}

	upload, closeUpload, err := slf.formUpload(c)
	if err != nil {
		writeFormError(c, err)
		return
	}
	defer closeUpload()

	if err := slf.jobService.Update(c.Request.Context(), c.Param("id"), mapper.FormToJobInput(form), upload); err != nil {
		writeActionError(c, slf.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.ActionResult{Success: true})
}

func (slf *adminJobHandler) delete(c *gin.Context) {
	if err := slf.jobService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeActionError(c, slf.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.ActionResult{Success: true})
}

func (slf *adminJobHandler) listClients(c *gin.Context) {
	clients, err := slf.clientService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, mapper.ToClients(clients))
}

func (slf *adminJobHandler) createClient(c *gin.Context) {
	var req request.CreateClient
	if err := pkg.ParseAndValidateForm(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.ActionResult{Error: pkg.ValidationMessage(err)})
		return
	}

	client, err := slf.clientService.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeActionError(c, slf.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.ClientCreated{Success: true, Client: mapper.ToClient(client)})
}

// writeFormError answers a job form that could not be read.
func writeFormError(c *gin.Context, err error) {
	if middleware.BodyTooLarge(err) {
		c.JSON(http.StatusRequestEntityTooLarge, response.ActionResult{Error: err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, response.ActionResult{Error: err.Error()})
}

// formUpload opens the optional "pdf_file" part. The returned close func is
// always safe to call.
func (slf *adminJobHandler) formUpload(c *gin.Context) (*service.Upload, func(), error) {
	noop := func() {}

	header, err := c.FormFile("pdf_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	if header.Size == 0 {
		return nil, noop, nil
	}
	if slf.uploadMaxBytes > 0 && header.Size > slf.uploadMaxBytes {
		return nil, noop, fmt.Errorf("pdf_file exceeds %d bytes", slf.uploadMaxBytes)
	}

	var file multipart.File
	if file, err = header.Open(); err != nil {
		return nil, noop, err
	}

	return &service.Upload{Filename: header.Filename, Size: header.Size, Body: file}, func() { _ = file.Close() }, nil
}
