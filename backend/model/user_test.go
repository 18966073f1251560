package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/najilx/file-share-webapp/backend/common"
)

func TestUserInsert_HashesPassword(t *testing.T) {
	setupTestDB(t)

	user := mustCreateUser(t, "alice@example.com")
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, common.ValidatePasswordAndHash("password123", user.Password))
	assert.Equal(t, common.UserStatusEnabled, user.Status)
}

func TestUserInsert_RejectsDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	mustCreateUser(t, "alice@example.com")
	dup := &User{FirstName: "Other", LastName: "User", Email: "alice@example.com", Password: "password456"}
	err := dup.Insert()
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestValidateUserCredentials(t *testing.T) {
	setupTestDB(t)

	created := mustCreateUser(t, "alice@example.com")

	user, err := ValidateUserCredentials("alice@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, created.Id, user.Id)

	_, err = ValidateUserCredentials("alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = ValidateUserCredentials("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateUserCredentials_DisabledUser(t *testing.T) {
	setupTestDB(t)

	user := mustCreateUser(t, "alice@example.com")
	assert.NoError(t, DB.Model(user).Update("status", common.UserStatusDisabled).Error)

	_, err := ValidateUserCredentials("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePassword(t *testing.T) {
	setupTestDB(t)

	user := mustCreateUser(t, "alice@example.com")
	assert.NoError(t, user.UpdatePassword("newpassword"))

	reloaded, err := GetUserById(user.Id)
	assert.NoError(t, err)
	assert.True(t, common.ValidatePasswordAndHash("newpassword", reloaded.Password))
	assert.False(t, common.ValidatePasswordAndHash("password123", reloaded.Password))
}

func TestGetUserById_NotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetUserById(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
