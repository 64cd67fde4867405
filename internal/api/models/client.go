package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is the company a posting is placed for. Jobs reference it weakly.
type Client struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (slf *Client) BeforeCreate(_ *gorm.DB) error {
	if slf.ID == "" {
		slf.ID = uuid.NewString()
	}
	return nil
}
