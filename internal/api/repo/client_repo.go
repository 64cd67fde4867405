package repo

import (
	"context"

	"jobsite/internal/api/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	Db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{Db: db}
}

func (slf *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	return slf.Db.WithContext(ctx).Create(client).Error
}

// FindAll returns every client ordered by name.
func (slf *ClientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := slf.Db.WithContext(ctx).Order("name ASC").Find(&clients).Error
	return clients, err
}
