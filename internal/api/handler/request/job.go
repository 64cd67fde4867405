package request

// JobForm is the admin job form as submitted (multipart or urlencoded).
// The PDF travels separately as the "pdf_file" part.
type JobForm struct {
	Title           string `json:"title" form:"title"`
	Area            string `json:"area" form:"area"`
	Type            string `json:"type" form:"type"`
	Salary          string `json:"salary" form:"salary"`
	Category        string `json:"category" form:"category"`
	Tags            string `json:"tags" form:"tags"`
	JobCode         string `json:"job_code" form:"job_code"`
	ClientID        string `json:"client_id" form:"client_id"`
	HeroTitle       string `json:"hero_title" form:"hero_title"`
	HeroLead        string `json:"hero_lead" form:"hero_lead"`
	HeroImageURL    string `json:"hero_image_url" form:"hero_image_url"`
	GalleryImageURL string `json:"gallery_image_url" form:"gallery_image_url"`
	Recommendation  string `json:"recommendation" form:"recommendation"`
	JobDescription  string `json:"job_description" form:"job_description"`
	WorkLocation    string `json:"work_location" form:"work_location"`
	NearestStation  string `json:"nearest_station" form:"nearest_station"`
	WorkTime        string `json:"work_time" form:"work_time"`
	WorkDays        string `json:"work_days" form:"work_days"`
	Holidays        string `json:"holidays" form:"holidays"`
	Requirements    string `json:"requirements" form:"requirements"`
	Welcome         string `json:"welcome" form:"welcome"`
	Benefits        string `json:"benefits" form:"benefits"`
	SelectionFlow   string `json:"selection_flow" form:"selection_flow"`
	Remarks         string `json:"remarks" form:"remarks"`
}

type CreateClient struct {
	Name string `json:"name" form:"name" validate:"required,max=200"`
}
