package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/model"
)

var ErrShareExpired = errors.New("share link expired")

// ShareEntry is one row of the owner's share listing: the stored share plus
// the resolved filename and the public retrieval URL.
type ShareEntry struct {
	*model.SharedFile
	Filename string `json:"filename"`
	FileURL  string `json:"file_url"`
}

func publicShareURL(token string) string {
	return common.ServerAddress + "/api/files/shared/" + token
}

// CreateShare issues a share link for a file the user owns and emails the
// retrieval URL to the recipient. The token never travels back to the
// caller; the notification email is the only channel that carries it.
func CreateShare(owner *model.User, fileId int64, recipientEmail string, expirationHours int, message string) error {
	fileRecord, err := model.GetFileOwnedBy(fileId, owner.Id)
	if err != nil {
		return err
	}

	share := model.SharedFile{
		FileId:         fileRecord.Id,
		RecipientEmail: recipientEmail,
		Message:        message,
		ExpiresAt:      time.Now().Add(time.Duration(expirationHours) * time.Hour).Unix(),
	}
	if err := share.Insert(); err != nil {
		return fmt.Errorf("save share record: %w", err)
	}

	subject := fmt.Sprintf("%s has shared a file with you", owner.Email)
	body := fmt.Sprintf(
		"%s shared a file: %s\n\nMessage:\n%s\n\nDownload within %d hour(s):\n%s\n\nIf you did not expect this, you can ignore this email.",
		owner.Email, fileRecord.Filename, message, expirationHours, publicShareURL(share.Token))
	if err := common.SendEmail(subject, body, recipientEmail); err != nil {
		return fmt.Errorf("send share notification: %w", err)
	}
	return nil
}

// ListShares returns every share the user has created, newest first, each
// with its public URL.
func ListShares(userId int64) ([]*ShareEntry, error) {
	shares, err := model.ListSharesForOwner(userId)
	if err != nil {
		return nil, err
	}
	entries := make([]*ShareEntry, 0, len(shares))
	for _, share := range shares {
		entry := &ShareEntry{SharedFile: share, FileURL: publicShareURL(share.Token)}
		if share.File != nil {
			entry.Filename = share.File.Filename
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RetrieveShared resolves a public token into a downloadable blob. The first
// successful retrieval before expiry marks the share accessed; later
// retrievals within the window still succeed and leave the flag set. Past
// the expiration instant the share always fails with ErrShareExpired, and
// the row stays behind as an inert record.
func RetrieveShared(token string) (*model.File, string, error) {
	share, err := model.GetSharedFileByToken(token)
	if err != nil {
		return nil, "", err
	}
	if share.IsExpired() {
		return nil, "", ErrShareExpired
	}
	if share.File == nil {
		return nil, "", model.ErrShareNotFound
	}
	if !share.Accessed {
		if err := share.MarkAccessed(); err != nil {
			return nil, "", fmt.Errorf("mark share accessed: %w", err)
		}
	}
	fullPath, err := common.BlobPath(share.File.UserId, share.File.Link)
	if err != nil {
		return nil, "", err
	}
	return share.File, fullPath, nil
}
