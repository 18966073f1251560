package model

import (
	"errors"

	"gorm.io/gorm"
)

var ErrFileNotFound = errors.New("file not found")

// File is the metadata row for one stored blob. Link is the generated name
// the blob lives under on disk; Filename is what the uploader called it and
// what downloads are served as.
type File struct {
	Id        int64  `json:"id" gorm:"primaryKey"`
	UserId    int64  `json:"-" gorm:"index;not null"`
	Filename  string `json:"filename" gorm:"index;size:255;not null"`
	Link      string `json:"-" gorm:"uniqueIndex;size:100;not null"`
	Size      int64  `json:"size" gorm:"not null"`
	CreatedAt int64  `json:"uploaded_at"`
}

func (file *File) Insert() error {
	return DB.Create(file).Error
}

func (file *File) Delete() error {
	return DB.Delete(file).Error
}

// GetFileOwnedBy resolves a file id scoped to its owner. A file that exists
// but belongs to someone else is reported exactly like a missing one.
func GetFileOwnedBy(fileId int64, userId int64) (*File, error) {
	var file File
	err := DB.First(&file, "id = ? AND user_id = ?", fileId, userId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

// TotalSizeForUser sums the byte sizes of everything the user has stored.
func TotalSizeForUser(userId int64) (int64, error) {
	var total int64
	err := DB.Model(&File{}).Where("user_id = ?", userId).
		Select("COALESCE(SUM(size), 0)").Scan(&total).Error
	return total, err
}

// ListFilesForUser returns the user's files newest first, optionally
// filtered by a case-insensitive filename substring.
func ListFilesForUser(userId int64, search string) ([]*File, error) {
	var files []*File
	query := DB.Where("user_id = ?", userId)
	if search != "" {
		query = query.Where("filename LIKE ?", "%"+search+"%")
	}
	err := query.Order("created_at DESC, id DESC").Find(&files).Error
	return files, err
}
