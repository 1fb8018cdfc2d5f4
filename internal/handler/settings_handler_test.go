package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/jobportal-api/pkg/response"
)

func TestSettingsHandlerUnknownGroupNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSettingsHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/settings/smtp", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "group", Value: "smtp"}}

	handler.GetGroup(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestSettingsHandlerUpdateUnknownGroupNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSettingsHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]interface{}{"values": map[string]interface{}{"host": "mail"}})
	req, _ := http.NewRequest(http.MethodPut, "/admin/settings/smtp", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "group", Value: "smtp"}}

	handler.Update(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
