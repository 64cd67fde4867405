package response

import "time"

// PublicJob is the projection of a job served to anonymous visitors. It has
// no attachment URL and no client reference, so neither can appear in JSON.
type PublicJob struct {
	ID              string    `json:"id"`
	JobCode         string    `json:"job_code"`
	Title           string    `json:"title"`
	Area            string    `json:"area"`
	Type            string    `json:"type"`
	Salary          string    `json:"salary"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	HeroTitle       *string   `json:"hero_title"`
	HeroLead        *string   `json:"hero_lead"`
	HeroImageURL    *string   `json:"hero_image_url"`
	GalleryImageURL *string   `json:"gallery_image_url"`
	Recommendation  *string   `json:"recommendation"`
	JobDescription  *string   `json:"job_description"`
	WorkLocation    *string   `json:"work_location"`
	NearestStation  *string   `json:"nearest_station"`
	WorkTime        *string   `json:"work_time"`
	WorkDays        *string   `json:"work_days"`
	Holidays        *string   `json:"holidays"`
	Requirements    *string   `json:"requirements"`
	Welcome         *string   `json:"welcome"`
	Benefits        *string   `json:"benefits"`
	SelectionFlow   *string   `json:"selection_flow"`
	Remarks         *string   `json:"remarks"`
	CreatedAt       time.Time `json:"created_at"`
}

// AdminJob is the full internal record shown in the back office.
type AdminJob struct {
	PublicJob
	PdfURL     *string `json:"pdf_url"`
	ClientID   *string `json:"client_id"`
	ClientName *string `json:"client_name"`
}

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// JobCreated is returned by a successful create.
type JobCreated struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	JobCode string `json:"job_code"`
}

type ClientCreated struct {
	Success bool   `json:"success"`
	Client  Client `json:"client"`
}
