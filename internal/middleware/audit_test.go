package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/internal/models"
)

type fakeAuditSink struct {
	entries []*models.AuditLog
	err     error
}

func (f *fakeAuditSink) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	f.entries = append(f.entries, entry)
	return f.err
}

func newAuditRouter(sink *fakeAuditSink, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: "admin-1"})
	})
	router.DELETE("/subscribers/:id",
		Audit(sink, nil, "SUBSCRIBER_DELETE", "subscribers"),
		func(c *gin.Context) { c.Status(status) })
	return router
}

func TestAuditRecordsSuccessfulMutation(t *testing.T) {
	sink := &fakeAuditSink{}
	router := newAuditRouter(sink, http.StatusNoContent)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/subscribers/sub-9", nil))

	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, "SUBSCRIBER_DELETE", entry.Action)
	assert.Equal(t, "subscribers", entry.Resource)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "sub-9", *entry.ResourceID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "admin-1", *entry.UserID)
	assert.Contains(t, string(entry.NewValues), `"method":"DELETE"`)
}

func TestAuditSkipsFailedRequests(t *testing.T) {
	sink := &fakeAuditSink{}
	router := newAuditRouter(sink, http.StatusNotFound)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/subscribers/missing", nil))

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, sink.entries)
}

func TestAuditWriteFailureDoesNotFailRequest(t *testing.T) {
	sink := &fakeAuditSink{err: errors.New("audit store down")}
	router := newAuditRouter(sink, http.StatusNoContent)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/subscribers/sub-9", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
