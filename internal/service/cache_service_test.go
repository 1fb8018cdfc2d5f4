package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

type fakeCacheRepo struct {
	patterns   []string
	patternErr error
}

func (f *fakeCacheRepo) Get(context.Context, string, interface{}) error {
	return appErrors.ErrCacheMiss
}

func (f *fakeCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (f *fakeCacheRepo) Forget(context.Context, string) error {
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return f.patternErr
}

func TestCacheServiceForgetPattern(t *testing.T) {
	repo := &fakeCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	svc.ForgetPattern(context.Background(), "dashboard:overview:*")
	assert.Equal(t, []string{"dashboard:overview:*"}, repo.patterns)
}

func TestCacheServiceForgetPatternDisabledIsNoop(t *testing.T) {
	repo := &fakeCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	svc.ForgetPattern(context.Background(), "dashboard:overview:*")
	assert.Empty(t, repo.patterns)
}

func TestCacheServiceForgetPatternMasksStoreFailure(t *testing.T) {
	repo := &fakeCacheRepo{patternErr: errors.New("redis down")}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	svc.ForgetPattern(context.Background(), "dashboard:overview:*")
	assert.Equal(t, []string{"dashboard:overview:*"}, repo.patterns)
}
