package repo

import (
	"context"

	"jobsite/internal/api/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	Db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Db: db}
}

func (slf *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := slf.Db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

func (slf *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := slf.Db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, err
}

func (slf *UserRepository) Create(ctx context.Context, user *models.User) error {
	return slf.Db.WithContext(ctx).Create(user).Error
}

func (slf *UserRepository) Update(ctx context.Context, user *models.User) error {
	return slf.Db.WithContext(ctx).Save(user).Error
}

func (slf *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := slf.Db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
