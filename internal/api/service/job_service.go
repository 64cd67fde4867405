package service

import (
	"context"
	"errors"
	"io"
	"time"

	"jobsite/internal/api/handler/mapper"
	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/models"
	"jobsite/internal/api/repo"
	"jobsite/pkg"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobRepository is the persistent job table.
type JobRepository interface {
	Insert(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context, filter repo.JobFilter) ([]models.Job, error)
	FindOne(ctx context.Context, id string, withClient bool) (models.Job, error)
}

// Upload is an attachment submitted with a job form.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// CreatedJob identifies a freshly inserted job.
type CreatedJob struct {
	ID      string
	JobCode string
}

const uploadFailedPrefix = "PDF upload failed: "

type JobService struct {
	jobRepo JobRepository
	files   pkg.FileStore
	views   pkg.ViewCache
	guard   *Guard
	logger  zerolog.Logger
	now     func() time.Time
}

func NewJobService(jobRepo JobRepository, files pkg.FileStore, views pkg.ViewCache, guard *Guard, logger zerolog.Logger) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		files:   files,
		views:   views,
		guard:   guard,
		logger:  logger,
		now:     time.Now,
	}
}

// Create inserts a new job with a generated job code. An attachment, when
// given, is stored first; a failed upload aborts before the insert.
func (slf *JobService) Create(ctx context.Context, input models.JobInput, upload *Upload) (CreatedJob, error) {
	if err := slf.guard.Require(ctx); err != nil {
		return CreatedJob{}, err
	}
	if err := validateInput(input); err != nil {
		return CreatedJob{}, err
	}

	job := models.Job{JobCode: GenerateJobCode()}
	applyInput(&job, input)

	if upload != nil && upload.Size > 0 {
		url, err := slf.storeUpload(ctx, upload)
		if err != nil {
			return CreatedJob{}, err
		}
		job.PdfURL = &url
	}

	if err := slf.jobRepo.Insert(ctx, &job); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		return CreatedJob{}, &UpstreamError{Err: err}
	}

	slf.views.Invalidate(ctx, pkg.ViewPublicJobs, pkg.ViewAdminJobs)
	slf.logger.Info().Str("jobId", job.ID).Str("jobCode", job.JobCode).Msg("Job created")
	return CreatedJob{ID: job.ID, JobCode: job.JobCode}, nil
}

// Update overwrites every mutable field of the job with input. The job code
// changes only when input carries one, and the stored attachment only when a
// new file is given.
func (slf *JobService) Update(ctx context.Context, id string, input models.JobInput, upload *Upload) error {
	if err := slf.guard.Require(ctx); err != nil {
		return err
	}
	if err := validateInput(input); err != nil {
		return err
	}
	if input.JobCode != "" && !ValidJobCode(input.JobCode) {
		return &ValidationError{Message: MsgInvalidJobCode}
	}

	var job models.Job
	applyInput(&job, input)
	fields := updateFields(job)
	if input.JobCode != "" {
		fields["job_code"] = input.JobCode
	}

	if upload != nil && upload.Size > 0 {
		url, err := slf.storeUpload(ctx, upload)
		if err != nil {
			return err
		}
		fields["pdf_url"] = url
	}

	if err := slf.jobRepo.Update(ctx, id, fields); err != nil {
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error updating job")
		return &UpstreamError{Err: err}
	}

	slf.views.Invalidate(ctx, pkg.ViewPublicJobs, pkg.ViewAdminJobs)
	slf.logger.Info().Str("jobId", id).Msg("Job updated")
	return nil
}

// Delete removes the job unconditionally.
func (slf *JobService) Delete(ctx context.Context, id string) error {
	if err := slf.guard.Require(ctx); err != nil {
		return err
	}

	if err := slf.jobRepo.Delete(ctx, id); err != nil {
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error deleting job")
		return &UpstreamError{Err: err}
	}

	slf.views.Invalidate(ctx, pkg.ViewPublicJobs, pkg.ViewAdminJobs)
	slf.logger.Info().Str("jobId", id).Msg("Job deleted")
	return nil
}

// ListJobs returns internal job records newest first, optionally filtered
// by a substring of title or job code.
func (slf *JobService) ListJobs(ctx context.Context, query string) ([]models.Job, error) {
	if query == "" {
		var cached []models.Job
		if slf.cacheGet(ctx, pkg.ViewAdminJobs, &cached) {
			return cached, nil
		}
	}

	jobs, err := slf.jobRepo.FindAll(ctx, repo.JobFilter{Query: query, WithClient: true})
	if err != nil {
		slf.logger.Error().Err(err).Str("query", query).Msg("Error listing jobs")
		return nil, &UpstreamError{Err: err}
	}

	if query == "" {
		slf.cacheSet(ctx, pkg.ViewAdminJobs, jobs)
	}
	return jobs, nil
}

// GetJob returns the internal record with the given id.
func (slf *JobService) GetJob(ctx context.Context, id string) (models.Job, error) {
	job, err := slf.jobRepo.FindOne(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Job{}, ErrNotFound
		}
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error getting job")
		return models.Job{}, &UpstreamError{Err: err}
	}
	return job, nil
}

// ListPublicJobs is ListJobs projected for anonymous visitors.
func (slf *JobService) ListPublicJobs(ctx context.Context, query string) ([]response.PublicJob, error) {
	if query == "" {
		var cached []response.PublicJob
		if slf.cacheGet(ctx, pkg.ViewPublicJobs, &cached) {
			return cached, nil
		}
	}

	jobs, err := slf.jobRepo.FindAll(ctx, repo.JobFilter{Query: query})
	if err != nil {
		slf.logger.Error().Err(err).Str("query", query).Msg("Error listing public jobs")
		return nil, &UpstreamError{Err: err}
	}

	public := mapper.ToPublicJobs(jobs)
	if query == "" {
		slf.cacheSet(ctx, pkg.ViewPublicJobs, public)
	}
	return public, nil
}

// GetPublicJob is GetJob projected for anonymous visitors.
func (slf *JobService) GetPublicJob(ctx context.Context, id string) (response.PublicJob, error) {
	job, err := slf.jobRepo.FindOne(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.PublicJob{}, ErrNotFound
		}
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error getting public job")
		return response.PublicJob{}, &UpstreamError{Err: err}
	}
	return mapper.ToPublicJob(job), nil
}

func (slf *JobService) storeUpload(ctx context.Context, upload *Upload) (string, error) {
	key := UploadKey(upload.Filename, slf.now())
	if err := slf.files.Upload(ctx, key, upload.Body, upload.Size); err != nil {
		slf.logger.Error().Err(err).Str("key", key).Msg("Error uploading job document")
		return "", &UpstreamError{Prefix: uploadFailedPrefix, Err: err}
	}
	return slf.files.PublicURL(key), nil
}

func (slf *JobService) cacheGet(ctx context.Context, path string, dest any) bool {
	found, err := slf.views.Get(ctx, path, dest)
	if err != nil {
		slf.logger.Warn().Err(err).Str("path", path).Msg("View cache read failed")
		return false
	}
	return found
}

func (slf *JobService) cacheSet(ctx context.Context, path string, value any) {
	if err := slf.views.Set(ctx, path, value); err != nil {
		slf.logger.Warn().Err(err).Str("path", path).Msg("View cache write failed")
	}
}

func validateInput(input models.JobInput) error {
	if err := pkg.ValidateStruct(input); err != nil {
		return &ValidationError{Message: pkg.ValidationMessage(err)}
	}
	return nil
}

func applyInput(job *models.Job, input models.JobInput) {
	job.Title = input.Title
	job.Area = input.Area
	job.Type = input.Type
	job.Salary = input.Salary
	job.Category = input.Category
	job.Tags = datatypes.JSONSlice[string](ParseTags(input.Tags))
	job.ClientID = input.ClientID
	job.HeroTitle = input.HeroTitle
	job.HeroLead = input.HeroLead
	job.HeroImageURL = input.HeroImageURL
	job.GalleryImageURL = input.GalleryImageURL
	job.Recommendation = input.Recommendation
	job.JobDescription = input.JobDescription
	job.WorkLocation = input.WorkLocation
	job.NearestStation = input.NearestStation
	job.WorkTime = input.WorkTime
	job.WorkDays = input.WorkDays
	job.Holidays = input.Holidays
	job.Requirements = input.Requirements
	job.Welcome = input.Welcome
	job.Benefits = input.Benefits
	job.SelectionFlow = input.SelectionFlow
	job.Remarks = input.Remarks
}

// updateFields lists every column an update overwrites, NULLs included.
func updateFields(job models.Job) map[string]any {
	return map[string]any{
		"title":             job.Title,
		"area":              job.Area,
		"type":              job.Type,
		"salary":            job.Salary,
		"category":          job.Category,
		"tags":              job.Tags,
		"client_id":         job.ClientID,
		"hero_title":        job.HeroTitle,
		"hero_lead":         job.HeroLead,
		"hero_image_url":    job.HeroImageURL,
		"gallery_image_url": job.GalleryImageURL,
		"recommendation":    job.Recommendation,
		"job_description":   job.JobDescription,
		"work_location":     job.WorkLocation,
		"nearest_station":   job.NearestStation,
		"work_time":         job.WorkTime,
		"work_days":         job.WorkDays,
		"holidays":          job.Holidays,
		"requirements":      job.Requirements,
		"welcome":           job.Welcome,
		"benefits":          job.Benefits,
		"selection_flow":    job.SelectionFlow,
		"remarks":           job.Remarks,
	}
}
