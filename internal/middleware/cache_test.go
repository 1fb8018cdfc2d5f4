package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	patterns []string
}

func (f *fakePurger) ForgetPattern(_ context.Context, pattern string) {
	f.patterns = append(f.patterns, pattern)
}

func newInvalidateRouter(purger *fakePurger, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/jobs",
		InvalidateCache(purger, "dashboard:overview:*"),
		func(c *gin.Context) { c.Status(status) })
	return router
}

func TestInvalidateCachePurgesAfterSuccessfulMutation(t *testing.T) {
	purger := &fakePurger{}
	router := newInvalidateRouter(purger, http.StatusCreated)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/jobs", nil))

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, []string{"dashboard:overview:*"}, purger.patterns)
}

func TestInvalidateCacheSkipsFailedMutation(t *testing.T) {
	purger := &fakePurger{}
	router := newInvalidateRouter(purger, http.StatusUnprocessableEntity)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/jobs", nil))

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Empty(t, purger.patterns)
}
