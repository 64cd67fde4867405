package models

// JobInput is a submitted job after coercion from the admin form. Title, Area,
// Type, Salary and Category are mandatory; every rich content field is
// optional and nil means NULL.
type JobInput struct {
	Title    string         `validate:"required,max=200"`
	Area     string         `validate:"required,max=200"`
	Type     EmploymentType `validate:"required,oneof=派遣 正社員 紹介予定派遣 契約社員 アルバイト・パート"`
	Salary   string         `validate:"required,max=200"`
	Category JobCategory    `validate:"required,oneof=事務 コールセンター 営業 IT・エンジニア クリエイティブ 販売・接客 その他"`
	// Tags is the raw comma separated list.
	Tags string
	// JobCode is only honoured by updates, and only when non-empty.
	JobCode  string
	ClientID *string

	HeroTitle       *string
	HeroLead        *string
	HeroImageURL    *string
	GalleryImageURL *string
	Recommendation  *string
	JobDescription  *string
	WorkLocation    *string
	NearestStation  *string
	WorkTime        *string
	WorkDays        *string
	Holidays        *string
	Requirements    *string
	Welcome         *string
	Benefits        *string
	SelectionFlow   *string
	Remarks         *string
}
