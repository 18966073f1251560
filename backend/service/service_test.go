package service

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "test-jwt-secret-key-for-unit-tests"
	common.JWTRefreshSecret = "test-jwt-refresh-secret-key-for-unit-tests"
	common.RedisEnabled = false
}

func setupServiceTestDB(t *testing.T) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	originalUploadPath := common.UploadPath
	common.SQLitePath = filepath.Join(t.TempDir(), "service_test.db")
	common.UploadPath = t.TempDir()

	err := model.InitDB()
	assert.NoError(t, err)

	t.Cleanup(func() {
		_ = model.CloseDB()
		common.SQLitePath = originalSQLitePath
		common.UploadPath = originalUploadPath
	})
}

type sentMail struct {
	Subject  string
	Body     string
	Receiver string
}

// stubEmail replaces the SMTP sender with a recorder for the duration of
// the test.
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

func createTestUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
	}
	assert.NoError(t, user.Insert())
	return user
}

func createTestFile(t *testing.T, userId int64, filename string, size int64) *model.File {
	t.Helper()
	file := &model.File{
		UserId:   userId,
		Filename: filename,
		Link:     filename + "-link",
		Size:     size,
	}
	assert.NoError(t, file.Insert())
	return file
}
