package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmploymentType is the contract form of a posting.
type EmploymentType string

const (
	EmploymentDispatch        EmploymentType = "派遣"
	EmploymentPermanent       EmploymentType = "正社員"
	EmploymentTempToPermanent EmploymentType = "紹介予定派遣"
	EmploymentContract        EmploymentType = "契約社員"
	EmploymentPartTime        EmploymentType = "アルバイト・パート"
)

// JobCategory is the occupational category shown on listings.
type JobCategory string

const (
	CategoryClerical   JobCategory = "事務"
	CategoryCallCenter JobCategory = "コールセンター"
	CategorySales      JobCategory = "営業"
	CategoryIT         JobCategory = "IT・エンジニア"
	CategoryCreative   JobCategory = "クリエイティブ"
	CategoryRetail     JobCategory = "販売・接客"
	CategoryOther      JobCategory = "その他"
)

// Job is a job posting. PdfURL is internal only and never leaves the admin surface.
type Job struct {
	ID       string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	JobCode  string                      `gorm:"type:varchar(7);not null;index" json:"job_code"`
	Title    string                      `gorm:"not null" json:"title"`
	Area     string                      `gorm:"not null" json:"area"`
	Type     EmploymentType              `gorm:"not null" json:"type"`
	Salary   string                      `gorm:"not null" json:"salary"`
	Category JobCategory                 `gorm:"not null" json:"category"`
	Tags     datatypes.JSONSlice[string] `json:"tags"`
	PdfURL   *string                     `gorm:"column:pdf_url" json:"pdf_url"`

	// TitleKey is the case-folded title used by search.
	TitleKey string `gorm:"column:title_key;index" json:"-"`

	ClientID *string `gorm:"type:varchar(36);index" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"clients,omitempty"`

	HeroTitle       *string `gorm:"type:text" json:"hero_title"`
	HeroLead        *string `gorm:"type:text" json:"hero_lead"`
	HeroImageURL    *string `gorm:"type:text;column:hero_image_url" json:"hero_image_url"`
	GalleryImageURL *string `gorm:"type:text;column:gallery_image_url" json:"gallery_image_url"`
	Recommendation  *string `gorm:"type:text" json:"recommendation"`
	JobDescription  *string `gorm:"type:text" json:"job_description"`
	WorkLocation    *string `gorm:"type:text" json:"work_location"`
	NearestStation  *string `gorm:"type:text" json:"nearest_station"`
	WorkTime        *string `gorm:"type:text" json:"work_time"`
	WorkDays        *string `gorm:"type:text" json:"work_days"`
	Holidays        *string `gorm:"type:text" json:"holidays"`
	Requirements    *string `gorm:"type:text" json:"requirements"`
	Welcome         *string `gorm:"type:text" json:"welcome"`
	Benefits        *string `gorm:"type:text" json:"benefits"`
	SelectionFlow   *string `gorm:"type:text" json:"selection_flow"`
	Remarks         *string `gorm:"type:text" json:"remarks"`

	CreatedAt time.Time `gorm:"autoCreateTime;index;column:created_at" json:"created_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (slf *Job) BeforeCreate(_ *gorm.DB) error {
	if slf.ID == "" {
		slf.ID = uuid.NewString()
	}
	slf.TitleKey = SearchKey(slf.Title)
	return nil
}

// SearchKey folds s the way stored search keys are folded. SQLite's LOWER
// only knows ASCII, so folding happens here rather than in SQL.
func SearchKey(s string) string {
	return strings.ToLower(s)
}
