package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobsite"
	"jobsite/internal/api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := jobsite.OpenDatabase(jobsite.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, db.AutoMigrate(models.All()...), "Failed to migrate test database")
	return db
}

func newJob(code string, title string) *models.Job {
	return &models.Job{
		JobCode:  code,
		Title:    title,
		Area:     "東京都",
		Type:     models.EmploymentContract,
		Salary:   "月給22万円",
		Category: models.CategoryCallCenter,
		Tags:     datatypes.JSONSlice[string]{"駅チカ"},
	}
}

func TestJobRepository_InsertAndFindOne(t *testing.T) {
	jobs := NewJobRepository(setupTestDB(t))
	ctx := context.Background()

	job := newJob("1234567", "受付スタッフ")
	require.NoError(t, jobs.Insert(ctx, job))
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	found, err := jobs.FindOne(ctx, job.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "受付スタッフ", found.Title)
	assert.Equal(t, datatypes.JSONSlice[string]{"駅チカ"}, found.Tags)
	assert.Nil(t, found.Client)

	_, err = jobs.FindOne(ctx, uuid.NewString(), false)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestJobRepository_UpdateWritesNulls(t *testing.T) {
	jobs := NewJobRepository(setupTestDB(t))
	ctx := context.Background()

	job := newJob("1234567", "受付スタッフ")
	remarks := "初日は研修"
	job.Remarks = &remarks
	require.NoError(t, jobs.Insert(ctx, job))

	var none *string
	require.NoError(t, jobs.Update(ctx, job.ID, map[string]any{"title": "受付", "remarks": none}))

	found, err := jobs.FindOne(ctx, job.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "受付", found.Title)
	assert.Nil(t, found.Remarks)
	assert.Equal(t, "1234567", found.JobCode)
}

func TestJobRepository_Delete(t *testing.T) {
	jobs := NewJobRepository(setupTestDB(t))
	ctx := context.Background()

	job := newJob("1234567", "受付スタッフ")
	require.NoError(t, jobs.Insert(ctx, job))
	require.NoError(t, jobs.Delete(ctx, job.ID))

	_, err := jobs.FindOne(ctx, job.ID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, jobs.Delete(ctx, job.ID))
}

func TestJobRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	jobs := NewJobRepository(db)
	ctx := context.Background()

	client := models.Client{Name: "株式会社テスト"}
	require.NoError(t, NewClientRepository(db).Create(ctx, &client))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := newJob("1111111", "Data Entry")
	older.CreatedAt = base
	newer := newJob("2222222", "DATA Analyst")
	newer.CreatedAt = base.Add(time.Minute)
	newer.ClientID = &client.ID
	other := newJob("3333333", "Receptionist")
	other.CreatedAt = base.Add(2 * time.Minute)
	for _, j := range []*models.Job{older, newer, other} {
		require.NoError(t, jobs.Insert(ctx, j))
	}

	found, err := jobs.FindAll(ctx, JobFilter{Query: "data", WithClient: true})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, newer.ID, found[0].ID)
	assert.Equal(t, older.ID, found[1].ID)
	require.NotNil(t, found[0].Client)
	assert.Equal(t, "株式会社テスト", found[0].Client.Name)
	assert.Nil(t, found[1].Client)

	byCode, err := jobs.FindAll(ctx, JobFilter{Query: "333"})
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, other.ID, byCode[0].ID)

	escaped, err := jobs.FindAll(ctx, JobFilter{Query: "!"})
	require.NoError(t, err)
	assert.Empty(t, escaped)
}

func TestJobRepository_FindAll_FoldsNonASCIITitles(t *testing.T) {
	db := setupTestDB(t)
	jobs := NewJobRepository(db)
	ctx := context.Background()

	ecole := newJob("1111111", "École stage")
	fullwidth := newJob("2222222", "ＩＴエンジニア募集")
	clerk := newJob("3333333", "Clerk_50%")
	for _, j := range []*models.Job{ecole, fullwidth, clerk} {
		require.NoError(t, jobs.Insert(ctx, j))
	}

	tests := []struct {
		query string
		want  string
	}{
		{"École", ecole.ID},
		{"école", ecole.ID},
		{"ÉCOLE", ecole.ID},
		{"ＩＴ", fullwidth.ID},
		{"ｉｔ", fullwidth.ID},
		{"CLERK", clerk.ID},
		{"_50%", clerk.ID},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			found, err := jobs.FindAll(ctx, JobFilter{Query: tt.query})
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, tt.want, found[0].ID)
		})
	}

	require.NoError(t, jobs.Update(ctx, ecole.ID, map[string]any{"title": "Ärztliche Assistenz"}))
	renamed, err := jobs.FindAll(ctx, JobFilter{Query: "ärztliche"})
	require.NoError(t, err)
	require.Len(t, renamed, 1)
	assert.Equal(t, ecole.ID, renamed[0].ID)

	stale, err := jobs.FindAll(ctx, JobFilter{Query: "école"})
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestProfileRepository_SetAdmin(t *testing.T) {
	profiles := NewProfileRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := profiles.FindByID(ctx, "u1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, profiles.SetAdmin(ctx, "u1", true))
	profile, err := profiles.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.IsAdmin)
	assert.True(t, *profile.IsAdmin)

	require.NoError(t, profiles.SetAdmin(ctx, "u1", false))
	profile, err = profiles.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, *profile.IsAdmin)
}

func TestUserRepository(t *testing.T) {
	users := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := models.User{Email: "ops@example.com", Password: "hash", Actif: true}
	require.NoError(t, users.Create(ctx, &user))
	assert.NotEmpty(t, user.ID)

	exists, err := users.ExistsByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := users.FindByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found.RefreshToken = "token"
	require.NoError(t, users.Update(ctx, &found))
	byID, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "token", byID.RefreshToken)
}
