package repo

import (
	"context"

	"jobsite/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	Db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{Db: db}
}

func (slf *ProfileRepository) FindByID(ctx context.Context, id string) (models.Profile, error) {
	var profile models.Profile
	err := slf.Db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	return profile, err
}

// SetAdmin creates or updates the profile of userID.
func (slf *ProfileRepository) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	profile := models.Profile{ID: userID, IsAdmin: &isAdmin}
	return slf.Db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_admin"}),
		}).
		Create(&profile).Error
}
