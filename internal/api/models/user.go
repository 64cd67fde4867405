package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(255)"`
	Password     string    `gorm:"not null;column:password"`
	Actif        bool      `gorm:"default:true;column:actif"`
	RefreshToken string    `gorm:"type:text;column:refresh_token"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (slf *User) BeforeCreate(_ *gorm.DB) error {
	if slf.ID == "" {
		slf.ID = uuid.NewString()
	}
	return nil
}

// All returns every model the application migrates.
func All() []any {
	return []any{&User{}, &Profile{}, &Client{}, &Job{}}
}
