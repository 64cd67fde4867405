package mapper

import (
	"strings"

	"jobsite/internal/api/handler/request"
	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/models"
	"jobsite/pkg"
)

// FormToJobInput coerces the loosely typed form once. Empty optional fields
// become nil.
func FormToJobInput(form request.JobForm) models.JobInput {
	return models.JobInput{
		Title:           form.Title,
		Area:            form.Area,
		Type:            models.EmploymentType(form.Type),
		Salary:          form.Salary,
		Category:        models.JobCategory(form.Category),
		Tags:            form.Tags,
		JobCode:         strings.TrimSpace(form.JobCode),
		ClientID:        pkg.NilIfEmpty(form.ClientID),
		HeroTitle:       pkg.NilIfEmpty(form.HeroTitle),
		HeroLead:        pkg.NilIfEmpty(form.HeroLead),
		HeroImageURL:    pkg.NilIfEmpty(form.HeroImageURL),
		GalleryImageURL: pkg.NilIfEmpty(form.GalleryImageURL),
		Recommendation:  pkg.NilIfEmpty(form.Recommendation),
		JobDescription:  pkg.NilIfEmpty(form.JobDescription),
		WorkLocation:    pkg.NilIfEmpty(form.WorkLocation),
		NearestStation:  pkg.NilIfEmpty(form.NearestStation),
		WorkTime:        pkg.NilIfEmpty(form.WorkTime),
		WorkDays:        pkg.NilIfEmpty(form.WorkDays),
		Holidays:        pkg.NilIfEmpty(form.Holidays),
		Requirements:    pkg.NilIfEmpty(form.Requirements),
		Welcome:         pkg.NilIfEmpty(form.Welcome),
		Benefits:        pkg.NilIfEmpty(form.Benefits),
		SelectionFlow:   pkg.NilIfEmpty(form.SelectionFlow),
		Remarks:         pkg.NilIfEmpty(form.Remarks),
	}
}

// ToPublicJob strips every internal-only field from j.
func ToPublicJob(j models.Job) response.PublicJob {
	tags := []string(j.Tags)
	if tags == nil {
		tags = []string{}
	}
	return response.PublicJob{
		ID:              j.ID,
		JobCode:         j.JobCode,
		Title:           j.Title,
		Area:            j.Area,
		Type:            string(j.Type),
		Salary:          j.Salary,
		Category:        string(j.Category),
		Tags:            tags,
		HeroTitle:       j.HeroTitle,
		HeroLead:        j.HeroLead,
		HeroImageURL:    j.HeroImageURL,
		GalleryImageURL: j.GalleryImageURL,
		Recommendation:  j.Recommendation,
		JobDescription:  j.JobDescription,
		WorkLocation:    j.WorkLocation,
		NearestStation:  j.NearestStation,
		WorkTime:        j.WorkTime,
		WorkDays:        j.WorkDays,
		Holidays:        j.Holidays,
		Requirements:    j.Requirements,
		Welcome:         j.Welcome,
		Benefits:        j.Benefits,
		SelectionFlow:   j.SelectionFlow,
		Remarks:         j.Remarks,
		CreatedAt:       j.CreatedAt,
	}
}

func ToPublicJobs(entities []models.Job) []response.PublicJob {
	out := make([]response.PublicJob, len(entities))
	for i, j := range entities {
		out[i] = ToPublicJob(j)
	}
	return out
}

func ToAdminJob(j models.Job) response.AdminJob {
	resp := response.AdminJob{
		PublicJob: ToPublicJob(j),
		PdfURL:    j.PdfURL,
		ClientID:  j.ClientID,
	}
	if j.Client != nil {
		resp.ClientName = pkg.ToPtr(j.Client.Name)
	}
	return resp
}

func ToAdminJobs(entities []models.Job) []response.AdminJob {
	out := make([]response.AdminJob, len(entities))
	for i, j := range entities {
		out[i] = ToAdminJob(j)
	}
	return out
}

func ToClient(c models.Client) response.Client {
	return response.Client{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func ToClients(entities []models.Client) []response.Client {
	out := make([]response.Client, len(entities))
	for i, c := range entities {
		out[i] = ToClient(c)
	}
	return out
}
