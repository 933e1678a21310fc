package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	log := Init("nonsense", "text", &buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	Init("debug", "json", &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	Init("info", "json", &buf)
	defer Init("info", "text", nil)

	r := gin.New()
	r.Use(GinLogger(New("http")))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "/missing", line["path"])
	assert.Equal(t, float64(404), line["status"])
	assert.Equal(t, "warning", line["level"])
}
