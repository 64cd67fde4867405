package models

// Profile carries the authorization flags of a user. ID equals User.ID.
type Profile struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	IsAdmin *bool  `gorm:"column:is_admin" json:"is_admin"`
}

func (Profile) TableName() string {
	return "profiles"
}
