package model

import (
	"errors"

	"gorm.io/gorm"

	"github.com/najilx/file-share-webapp/backend/common"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email address already registered")
)

// User is an account row. Password always holds the bcrypt hash, never the
// plaintext, and is excluded from every JSON response.
type User struct {
	Id          int64  `json:"id" gorm:"primaryKey"`
	FirstName   string `json:"first_name" gorm:"size:50"`
	LastName    string `json:"last_name" gorm:"size:50"`
	Email       string `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password    string `json:"-" gorm:"size:100;not null"`
	DateOfBirth string `json:"date_of_birth" gorm:"size:10"`
	Status      int    `json:"status" gorm:"type:int;default:1"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// Insert hashes the plaintext password currently on the struct and persists
// the row. Fails with ErrEmailTaken before touching the table if the address
// is already registered.
func (user *User) Insert() error {
	if IsEmailAlreadyTaken(user.Email) {
		return ErrEmailTaken
	}
	hashed, err := common.Password2Hash(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if user.Status == 0 {
		user.Status = common.UserStatusEnabled
	}
	return DB.Create(user).Error
}

func IsEmailAlreadyTaken(email string) bool {
	var count int64
	DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func GetUserById(id int64) (*User, error) {
	var user User
	if err := DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(email string) (*User, error) {
	var user User
	if err := DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ValidateUserCredentials authenticates by email and plaintext password. It
// answers with one generic error for a wrong address, a wrong password, and
// a disabled account alike.
func ValidateUserCredentials(email string, password string) (*User, error) {
	user, err := GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !common.ValidatePasswordAndHash(password, user.Password) || user.Status != common.UserStatusEnabled {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePassword replaces the stored hash with one derived from newPassword.
func (user *User) UpdatePassword(newPassword string) error {
	hashed, err := common.Password2Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return DB.Model(user).Update("password", hashed).Error
}
