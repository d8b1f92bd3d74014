package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anxforever/portfolio-api/config"
	"github.com/anxforever/portfolio-api/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.IsTest = true
}

func newGuardedRouter(env config.Environment) *gin.Engine {
	cfg := &config.ServerConfig{
		Environment: env,
		SiteURL:     "https://example.com",
	}
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/api/contact", OriginGuard(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doPost(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/contact", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestOriginGuardProduction(t *testing.T) {
	r := newGuardedRouter(config.EnvProduction)

	t.Run("allowed origin passes", func(t *testing.T) {
		w := doPost(r, map[string]string{"Origin": "https://example.com"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("www variant passes", func(t *testing.T) {
		w := doPost(r, map[string]string{"Origin": "https://www.example.com"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign origin is rejected", func(t *testing.T) {
		w := doPost(r, map[string]string{"Origin": "https://evil.example"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("no origin and no referer is rejected", func(t *testing.T) {
		w := doPost(r, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing origin with matching referer passes", func(t *testing.T) {
		w := doPost(r, map[string]string{"Referer": "https://example.com/contact"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing origin with foreign referer is rejected", func(t *testing.T) {
		w := doPost(r, map[string]string{"Referer": "https://evil.example/contact"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("localhost is not allowed in production", func(t *testing.T) {
		w := doPost(r, map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestOriginGuardDevelopment(t *testing.T) {
	r := newGuardedRouter(config.EnvDevelopment)

	t.Run("no origin passes", func(t *testing.T) {
		w := doPost(r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("localhost origin passes", func(t *testing.T) {
		w := doPost(r, map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign origin is still rejected", func(t *testing.T) {
		w := doPost(r, map[string]string{"Origin": "https://evil.example"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
