package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "test-jwt-secret-key-for-handler-tests"
	common.JWTRefreshSecret = "test-jwt-refresh-secret-key-for-handler-tests"
	common.RedisEnabled = false
}

func setupHandlerTestDB(t *testing.T) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	originalUploadPath := common.UploadPath
	common.SQLitePath = filepath.Join(t.TempDir(), "handler_test.db")
	common.UploadPath = t.TempDir()

	err := model.InitDB()
	assert.NoError(t, err)

	t.Cleanup(func() {
		_ = model.CloseDB()
		common.SQLitePath = originalSQLitePath
		common.UploadPath = originalUploadPath
	})
}

// authAs stands in for the auth middleware so handler behavior can be
// tested without minting tokens for every request.
func authAs(userId int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userId)
		c.Next()
	}
}

// newTestRouter mounts the API routes the way the real router does, with
// the identity middleware swapped for authAs and no rate limiting.
func newTestRouter(userId int64) *gin.Engine {
	router := gin.New()
	router.Use(sessions.Sessions("session", cookie.NewStore([]byte("test-session-secret"))))

	userRoute := router.Group("/api/user")
	{
		userRoute.POST("/register", Register)
		userRoute.POST("/login", Login)
		userRoute.POST("/forgot-password", ForgotPassword)
		userRoute.POST("/reset-password/:id/:token", ResetPassword)
		userRoute.POST("/token/refresh", RefreshToken)

		authRoute := userRoute.Group("/")
		authRoute.Use(authAs(userId))
		{
			authRoute.GET("/logout", Logout)
			authRoute.GET("/self", GetSelf)
			authRoute.POST("/change-password", ChangePassword)
		}
	}

	fileRoute := router.Group("/api/files")
	{
		fileRoute.GET("/shared/:token", DownloadSharedFile)

		authRoute := fileRoute.Group("/")
		authRoute.Use(authAs(userId))
		{
			authRoute.POST("/upload", UploadFiles)
			authRoute.GET("/list", ListFiles)
			authRoute.DELETE("/delete/:id", DeleteFile)
			authRoute.GET("/download/:id", DownloadFile)
			authRoute.POST("/share", ShareFile)
			authRoute.GET("/shared-list", ListSharedFiles)
		}
	}
	return router
}

func newJSONRequest(t *testing.T, method string, url string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type filePart struct {
	Name    string
	Content []byte
}

// newMultipartUpload builds a POST /api/files/upload request with one part
// named "files" per entry, in order.
func newMultipartUpload(t *testing.T, files []filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		assert.NoError(t, err)
		_, err = part.Write(f.Content)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/files/upload", &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeAPIResponse(t *testing.T, resp *httptest.ResponseRecorder) common.APIResponse {
	t.Helper()
	var apiResp common.APIResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiResp))
	return apiResp
}

type sentMail struct {
	Subject  string
	Body     string
	Receiver string
}

func stubEmail(t *testing.T) *[]sentMail {
	t.Helper()
	var sent []sentMail
	original := common.SendEmail
	common.SendEmail = func(subject string, body string, receiver string) error {
		sent = append(sent, sentMail{Subject: subject, Body: body, Receiver: receiver})
		return nil
	}
	t.Cleanup(func() { common.SendEmail = original })
	return &sent
}

func createTestUser(t *testing.T, email string, password string) *model.User {
	t.Helper()
	user := &model.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	}
	assert.NoError(t, user.Insert())
	return user
}
