package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/najilx/file-share-webapp/backend/common"
)

func corsTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(CORS())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func withCORSOrigins(t *testing.T, configured string) {
	t.Helper()
	original := common.CORSAllowOrigins
	common.CORSAllowOrigins = configured
	t.Cleanup(func() { common.CORSAllowOrigins = original })
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	withCORSOrigins(t, "https://app.example.com, https://staging.example.com")
	router := corsTestRouter()

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "https://app.example.com", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	withCORSOrigins(t, "https://app.example.com")
	router := corsTestRouter()

	// A credentialed request from an unlisted origin must not get its
	// origin reflected back.
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DefaultsToFrontendBaseURL(t *testing.T) {
	withCORSOrigins(t, "")
	originalFrontend := common.FrontendBaseURL
	common.FrontendBaseURL = "https://files.example.com"
	t.Cleanup(func() { common.FrontendBaseURL = originalFrontend })
	router := corsTestRouter()

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://files.example.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, "https://files.example.com", resp.Header().Get("Access-Control-Allow-Origin"))
}
