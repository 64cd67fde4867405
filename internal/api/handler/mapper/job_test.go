package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"jobsite/internal/api/handler/request"
	"jobsite/internal/api/models"
	"jobsite/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestFormToJobInput(t *testing.T) {
	input := FormToJobInput(request.JobForm{
		Title:     "事務",
		Type:      "正社員",
		Category:  "事務",
		JobCode:   " 5415910 ",
		ClientID:  "",
		HeroTitle: "",
		Remarks:   "駅徒歩3分",
	})

	assert.Equal(t, models.EmploymentPermanent, input.Type)
	assert.Equal(t, models.CategoryClerical, input.Category)
	assert.Equal(t, "5415910", input.JobCode)
	assert.Nil(t, input.ClientID)
	assert.Nil(t, input.HeroTitle)
	require.NotNil(t, input.Remarks)
	assert.Equal(t, "駅徒歩3分", *input.Remarks)
}

func TestToPublicJob(t *testing.T) {
	job := models.Job{
		ID:        "job-1",
		JobCode:   "1234567",
		Title:     "受付",
		Tags:      nil,
		PdfURL:    pkg.ToPtr("https://files.example.com/secret.pdf"),
		ClientID:  pkg.ToPtr("client-1"),
		Client:    &models.Client{ID: "client-1", Name: "Acme"},
		CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	public := ToPublicJob(job)
	assert.Equal(t, []string{}, public.Tags)

	raw, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "pdf_url")
	assert.NotContains(t, string(raw), "client")
	assert.NotContains(t, string(raw), "secret.pdf")
	assert.Contains(t, string(raw), `"tags":[]`)
}

func TestToAdminJob(t *testing.T) {
	job := models.Job{
		ID:       "job-1",
		Tags:     datatypes.JSONSlice[string]{"a", "b"},
		PdfURL:   pkg.ToPtr("https://files.example.com/doc.pdf"),
		ClientID: pkg.ToPtr("client-1"),
		Client:   &models.Client{ID: "client-1", Name: "Acme"},
	}

	admin := ToAdminJob(job)
	assert.Equal(t, []string{"a", "b"}, admin.Tags)
	assert.Equal(t, job.PdfURL, admin.PdfURL)
	require.NotNil(t, admin.ClientName)
	assert.Equal(t, "Acme", *admin.ClientName)

	job.Client = nil
	assert.Nil(t, ToAdminJob(job).ClientName)
}
