package common

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Blob storage is plain local disk: every user gets a directory under
// UploadPath and blobs are stored under generated names so uploads with the
// same filename never collide. The declared filename only lives in the
// database row.

func userDir(userID int64) string {
	return filepath.Join(UploadPath, fmt.Sprintf("user_%d", userID))
}

// SaveUploadedFile writes a multipart file into the owner's directory and
// returns the generated link (relative name) it was stored under.
func SaveUploadedFile(c *gin.Context, userID int64, fileHeader *multipart.FileHeader) (string, error) {
	dir := userDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	link := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(dir, link)); err != nil {
		return "", fmt.Errorf("save uploaded file: %w", err)
	}
	return link, nil
}

// BlobPath resolves a stored link to its on-disk path, refusing anything
// that escapes the owner's directory.
func BlobPath(userID int64, link string) (string, error) {
	dir := userDir(userID)
	fullPath := filepath.Join(dir, link)
	if !strings.HasPrefix(filepath.Clean(fullPath), filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid blob path %q", link)
	}
	return fullPath, nil
}

// DeleteBlob removes a stored blob. A missing file is not an error: the
// database row is authoritative and the blob may already be gone.
func DeleteBlob(userID int64, link string) error {
	fullPath, err := BlobPath(userID, link)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
