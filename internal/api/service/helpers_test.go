package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"jobsite"
	"jobsite/internal/api/models"
	"jobsite/internal/api/repo"
	"jobsite/pkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
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

	t.Cleanup(func() {
		if conn, err := db.DB(); err == nil {
			conn.Close()
		}
	})
	return db
}

// asUser returns a context carrying a fresh identity. isAdmin nil means the
// user has no profile row at all.
func asUser(t *testing.T, db *gorm.DB, isAdmin *bool) context.Context {
	t.Helper()

	userID := uuid.NewString()
	if isAdmin != nil {
		require.NoError(t, repo.NewProfileRepository(db).SetAdmin(context.Background(), userID, *isAdmin))
	}
	return WithIdentity(context.Background(), Identity{UserID: userID, Email: userID + "@example.com"})
}

func asAdmin(t *testing.T, db *gorm.DB) context.Context {
	return asUser(t, db, pkg.ToPtr(true))
}

// countingJobRepo records how often each repository operation ran.
type countingJobRepo struct {
	JobRepository
	inserts, updates, deletes, finds int
}

func (slf *countingJobRepo) Insert(ctx context.Context, job *models.Job) error {
	slf.inserts++
	return slf.JobRepository.Insert(ctx, job)
}

func (slf *countingJobRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	slf.updates++
	return slf.JobRepository.Update(ctx, id, fields)
}

func (slf *countingJobRepo) Delete(ctx context.Context, id string) error {
	slf.deletes++
	return slf.JobRepository.Delete(ctx, id)
}

func (slf *countingJobRepo) FindAll(ctx context.Context, filter repo.JobFilter) ([]models.Job, error) {
	slf.finds++
	return slf.JobRepository.FindAll(ctx, filter)
}

func (slf *countingJobRepo) writes() int {
	return slf.inserts + slf.updates + slf.deletes
}

// fakeFileStore keeps uploads in memory, or fails them all when err is set.
type fakeFileStore struct {
	err     error
	objects map[string][]byte
	calls   int
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{objects: map[string][]byte{}}
}

func (slf *fakeFileStore) Upload(_ context.Context, key string, body io.Reader, _ int64) error {
	slf.calls++
	if slf.err != nil {
		return slf.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	slf.objects[key] = data
	return nil
}

func (slf *fakeFileStore) PublicURL(key string) string {
	return "https://files.example.com/job-documents/" + key
}

// memoryViews is a ViewCache backed by a map that remembers invalidations.
type memoryViews struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func newMemoryViews() *memoryViews {
	return &memoryViews{entries: map[string][]byte{}}
}

func (slf *memoryViews) Get(_ context.Context, path string, dest any) (bool, error) {
	slf.mu.Lock()
	defer slf.mu.Unlock()
	data, ok := slf.entries[path]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (slf *memoryViews) Set(_ context.Context, path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	slf.mu.Lock()
	defer slf.mu.Unlock()
	slf.entries[path] = data
	return nil
}

func (slf *memoryViews) Invalidate(_ context.Context, paths ...string) {
	slf.mu.Lock()
	defer slf.mu.Unlock()
	for _, p := range paths {
		delete(slf.entries, p)
	}
	slf.invalidated = append(slf.invalidated, paths...)
}

type jobFixture struct {
	db      *gorm.DB
	repo    *countingJobRepo
	files   *fakeFileStore
	views   *memoryViews
	service *JobService
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()

	db := setupTestDB(t)
	f := &jobFixture{
		db:    db,
		repo:  &countingJobRepo{JobRepository: repo.NewJobRepository(db)},
		files: newFakeFileStore(),
		views: newMemoryViews(),
	}
	guard := NewGuard(repo.NewProfileRepository(db), zerolog.Nop())
	f.service = NewJobService(f.repo, f.files, f.views, guard, zerolog.Nop())
	return f
}

func validInput() models.JobInput {
	return models.JobInput{
		Title:    "一般事務スタッフ",
		Area:     "東京都渋谷区",
		Type:     models.EmploymentDispatch,
		Salary:   "時給1,600円",
		Category: models.CategoryClerical,
		Tags:     "a, b",
	}
}

type failingProfiles struct{}

func (failingProfiles) FindByID(context.Context, string) (models.Profile, error) {
	return models.Profile{}, errors.New("connection refused")
}
