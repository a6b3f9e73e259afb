package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewhouse/backend/internal/interfaces/http/dto"
)

func newBodyLimitRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(maxBytes))
	router.POST("/batches", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bytes": len(body)})
	})
	return router
}

func TestBodyLimitAllowsSmallBody(t *testing.T) {
	router := newBodyLimitRouter(64)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/batches", strings.NewReader(`{"name":"pale ale"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimitRejectsDeclaredOversize(t *testing.T) {
	router := newBodyLimitRouter(16)

	payload := bytes.Repeat([]byte("x"), 64)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/batches", bytes.NewReader(payload))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "REQUEST_TOO_LARGE", resp.Error.Code)
}

func TestBodyLimitCapsStreamingBody(t *testing.T) {
	router := newBodyLimitRouter(16)

	// No Content-Length, so the limit is enforced by the reader.
	payload := bytes.Repeat([]byte("x"), 64)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/batches", io.NopCloser(bytes.NewReader(payload)))
	req.ContentLength = -1
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
