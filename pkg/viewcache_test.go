package pkg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	paths []string
}

func (slf *recordingInvalidator) Invalidate(_ context.Context, paths ...string) {
	slf.paths = append(slf.paths, paths...)
}

func TestNopViewCache(t *testing.T) {
	cache := NewNopViewCache()

	require.NoError(t, cache.Set(context.Background(), ViewPublicJobs, []string{"x"}))

	var dest []string
	found, err := cache.Get(context.Background(), ViewPublicJobs, &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)
}

func TestWithInvalidators(t *testing.T) {
	first := &recordingInvalidator{}
	second := &recordingInvalidator{}

	cache := WithInvalidators(NewNopViewCache(), first, second)
	cache.Invalidate(context.Background(), ViewPublicJobs, ViewAdminJobs)

	assert.Equal(t, []string{ViewPublicJobs, ViewAdminJobs}, first.paths)
	assert.Equal(t, []string{ViewPublicJobs, ViewAdminJobs}, second.paths)
}

func TestWithInvalidators_NoExtra(t *testing.T) {
	base := NewNopViewCache()
	assert.Same(t, base, WithInvalidators(base))
}
