package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShareNotFound = errors.New("share link not found")

// SharedFile is one share of a File: an unguessable token granting
// unauthenticated download of the referenced file until ExpiresAt.
// Accessed moves false→true on the first successful public retrieval and
// never reverts. Expired rows persist as inert records.
type SharedFile struct {
	Id             int64  `json:"id" gorm:"primaryKey"`
	FileId         int64  `json:"file_id" gorm:"index;not null"`
	RecipientEmail string `json:"recipient_email" gorm:"size:100;not null"`
	Message        string `json:"message" gorm:"type:text"`
	Token          string `json:"-" gorm:"uniqueIndex;size:36;not null"`
	ExpiresAt      int64  `json:"expiration" gorm:"not null"`
	Accessed       bool   `json:"accessed" gorm:"default:false"`
	CreatedAt      int64  `json:"shared_at"`

	File *File `json:"-" gorm:"foreignKey:FileId"`
}

// Insert fills in a fresh token (UUIDv4, 128 random bits) and persists the
// share. ExpiresAt must already be set by the caller.
func (share *SharedFile) Insert() error {
	share.Token = uuid.New().String()
	share.Accessed = false
	return DB.Create(share).Error
}

func (share *SharedFile) IsExpired() bool {
	return time.Now().Unix() >= share.ExpiresAt
}

// MarkAccessed flips the accessed flag with a single conditional UPDATE so
// concurrent retrievals race only inside the storage engine. Calling it on
// an already-accessed share is a no-op.
func (share *SharedFile) MarkAccessed() error {
	err := DB.Model(&SharedFile{}).
		Where("id = ? AND accessed = ?", share.Id, false).
		Update("accessed", true).Error
	if err != nil {
		return err
	}
	share.Accessed = true
	return nil
}

// GetSharedFileByToken resolves a public token, preloading the referenced
// file so the caller can stream its blob.
func GetSharedFileByToken(token string) (*SharedFile, error) {
	var share SharedFile
	err := DB.Preload("File").First(&share, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &share, nil
}

// ListSharesForOwner returns every share whose referenced file belongs to
// the user, newest first.
func ListSharesForOwner(userId int64) ([]*SharedFile, error) {
	var shares []*SharedFile
	err := DB.Preload("File").
		Joins("JOIN files ON files.id = shared_files.file_id").
		Where("files.user_id = ?", userId).
		Order("shared_files.created_at DESC, shared_files.id DESC").
		Find(&shares).Error
	return shares, err
}
