package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/workhive/jobportal-api/pkg/errors"
)

func TestResolveSortDefaults(t *testing.T) {
	spec, err := ResolveSort(Lookup("jobs"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "j.created_at", spec.Column)
	assert.Equal(t, "DESC", spec.Direction)
}

func TestResolveSortAllowList(t *testing.T) {
	spec, err := ResolveSort(Lookup("jobs"), "title", "asc")
	require.NoError(t, err)
	assert.Equal(t, "j.title", spec.Column)
	assert.Equal(t, "ASC", spec.Direction)

	_, err = ResolveSort(Lookup("jobs"), "salary_min; DROP TABLE jobs", "asc")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "sort_by", appErr.Field)
}

func TestResolveSortExcludesSensitiveColumns(t *testing.T) {
	_, err := ResolveSort(Lookup("users"), "password_hash", "asc")
	require.Error(t, err)
}

func TestResolveSortBadDirectionFallsBack(t *testing.T) {
	spec, err := ResolveSort(Lookup("jobs"), "title", "sideways")
	require.NoError(t, err)
	assert.Equal(t, "DESC", spec.Direction)
}

func TestResolvePageClamping(t *testing.T) {
	cases := []struct {
		name         string
		page, size   int
		expectedPage int
		expectedSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"oversized", 2, 500, 2, 100},
		{"in range", 4, 50, 4, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := ResolvePage(tc.page, tc.size, 20, 100)
			assert.Equal(t, tc.expectedPage, spec.Page)
			assert.Equal(t, tc.expectedSize, spec.Size)
		})
	}
}

func TestPageSpecOffset(t *testing.T) {
	assert.Equal(t, 0, PageSpec{Page: 1, Size: 20}.Offset())
	assert.Equal(t, 60, PageSpec{Page: 4, Size: 20}.Offset())
}
