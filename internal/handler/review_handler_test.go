package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestReviewHandlerApproveRequiresFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/admin/reviews/r-1/approval", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "r-1"}}

	handler.Approve(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
