package service

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/model"
)

var (
	ErrFileTooLarge  = errors.New("file exceeds the per-upload size limit")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// UploadAndRecordFile validates one multipart file against the per-file
// limit and the owner's remaining quota, stores the blob, and creates the
// metadata row. The quota check is read-then-write on purpose: two uploads
// racing from the same user can overshoot that user's own quota by at most
// one file, and nobody else's.
func UploadAndRecordFile(c *gin.Context, userId int64, fileHeader *multipart.FileHeader) (*model.File, error) {
	if fileHeader.Size > common.MaxFileSize {
		return nil, fmt.Errorf("%w (%d bytes, limit %d)", ErrFileTooLarge, fileHeader.Size, common.MaxFileSize)
	}

	total, err := model.TotalSizeForUser(userId)
	if err != nil {
		return nil, fmt.Errorf("compute storage usage: %w", err)
	}
	if total+fileHeader.Size > common.MaxTotalStorage {
		return nil, fmt.Errorf("%w (%d of %d bytes used)", ErrQuotaExceeded, total, common.MaxTotalStorage)
	}

	link, err := common.SaveUploadedFile(c, userId, fileHeader)
	if err != nil {
		return nil, err
	}

	fileRecord := model.File{
		UserId:   userId,
		Filename: fileHeader.Filename,
		Link:     link,
		Size:     fileHeader.Size,
	}
	if err := fileRecord.Insert(); err != nil {
		// The row is authoritative, so a failed insert must not leave an
		// orphaned blob behind.
		_ = common.DeleteBlob(userId, link)
		return nil, fmt.Errorf("save file record: %w", err)
	}
	return &fileRecord, nil
}

// DeleteFile removes the metadata row and the underlying blob of a file the
// user owns.
func DeleteFile(userId int64, fileId int64) error {
	fileRecord, err := model.GetFileOwnedBy(fileId, userId)
	if err != nil {
		return err
	}
	if err := fileRecord.Delete(); err != nil {
		return fmt.Errorf("delete file record %d: %w", fileId, err)
	}
	if err := common.DeleteBlob(userId, fileRecord.Link); err != nil {
		common.SysError(fmt.Sprintf("failed to delete blob %s for record %d: %s", fileRecord.Link, fileId, err.Error()))
	}
	return nil
}

// ResolveDownload locates an owned file and its on-disk blob path.
func ResolveDownload(userId int64, fileId int64) (*model.File, string, error) {
	fileRecord, err := model.GetFileOwnedBy(fileId, userId)
	if err != nil {
		return nil, "", err
	}
	fullPath, err := common.BlobPath(userId, fileRecord.Link)
	if err != nil {
		return nil, "", err
	}
	return fileRecord, fullPath, nil
}
