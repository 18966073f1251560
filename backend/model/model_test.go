package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/najilx/file-share-webapp/backend/common"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "model_test.db")

	err := InitDB()
	assert.NoError(t, err)

	t.Cleanup(func() {
		_ = CloseDB()
		common.SQLitePath = originalSQLitePath
	})
}

func mustCreateUser(t *testing.T, email string) *User {
	t.Helper()
	user := &User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
	}
	assert.NoError(t, user.Insert())
	return user
}

func mustCreateFile(t *testing.T, userId int64, filename string, size int64) *File {
	t.Helper()
	file := &File{
		UserId:   userId,
		Filename: filename,
		Link:     filename + "-link",
		Size:     size,
	}
	assert.NoError(t, file.Insert())
	return file
}
