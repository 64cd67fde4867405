package repo

import (
	"context"
	"strings"

	"jobsite/internal/api/models"

	"gorm.io/gorm"
)

// likeEscape is the LIKE escape character. "!" needs no quoting in any of the
// supported SQL dialects, unlike a backslash.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// JobFilter narrows FindAll.
type JobFilter struct {
	// Query matches title or job_code as a case-insensitive substring. Titles
	// are matched through their stored TitleKey so non-ASCII letters fold too.
	Query      string
	WithClient bool
}

type JobRepository struct {
	Db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{Db: db}
}

// Insert writes a full job row. ID and CreatedAt are assigned when empty.
func (slf *JobRepository) Insert(ctx context.Context, job *models.Job) error {
	return slf.Db.WithContext(ctx).Create(job).Error
}

// Update overwrites the given columns of the job with the given id. A new
// title refreshes title_key.
func (slf *JobRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if title, ok := fields["title"].(string); ok {
		fields["title_key"] = models.SearchKey(title)
	}
	return slf.Db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the job with the given id. Deleting a missing id is not an error.
func (slf *JobRepository) Delete(ctx context.Context, id string) error {
	return slf.Db.WithContext(ctx).Where("id = ?", id).Delete(&models.Job{}).Error
}

// FindAll returns jobs newest first.
func (slf *JobRepository) FindAll(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	var jobs []models.Job
	query := slf.Db.WithContext(ctx).Order("created_at DESC")
	if filter.WithClient {
		query = query.Preload("Client")
	}
	if filter.Query != "" {
		escaped := likeReplacer.Replace(filter.Query)
		folded := "%" + models.SearchKey(escaped) + "%"
		raw := "%" + escaped + "%"
		// LOWER(title) covers rows written before title_key existed.
		query = query.Where(
			"title_key LIKE ? ESCAPE '"+likeEscape+"'"+
				" OR LOWER(title) LIKE LOWER(?) ESCAPE '"+likeEscape+"'"+
				" OR LOWER(job_code) LIKE LOWER(?) ESCAPE '"+likeEscape+"'",
			folded, raw, raw,
		)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

// FindOne returns the single job with the given id. Anything but exactly one
// matching row yields gorm.ErrRecordNotFound.
func (slf *JobRepository) FindOne(ctx context.Context, id string, withClient bool) (models.Job, error) {
	var jobs []models.Job
	query := slf.Db.WithContext(ctx).Where("id = ?", id).Limit(2)
	if withClient {
		query = query.Preload("Client")
	}
	if err := query.Find(&jobs).Error; err != nil {
		return models.Job{}, err
	}
	if len(jobs) != 1 {
		return models.Job{}, gorm.ErrRecordNotFound
	}
	return jobs[0], nil
}
