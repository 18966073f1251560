package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/common"
	apierrors "github.com/najilx/file-share-webapp/backend/common/errors"
	"github.com/najilx/file-share-webapp/backend/model"
	"github.com/najilx/file-share-webapp/backend/service"
)

type ShareFileRequest struct {
	FileId          int64  `json:"file_id" validate:"required,gt=0"`
	RecipientEmail  string `json:"recipient_email" validate:"required,email"`
	ExpirationHours int    `json:"expiration_hours" validate:"required,gt=0,lte=720"`
	Message         string `json:"message" validate:"omitempty,max=2000"`
}

// ShareFile creates a share link for an owned file and mails it to the
// recipient. The token is never part of the response; the email is the only
// channel that carries it.
func ShareFile(c *gin.Context) {
	id, ok := currentUserId(c)
	if !ok {
		return
	}

	var req ShareFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid request body: "+err.Error())
		return
	}
	if fieldErrors := common.ValidateStruct(&req); len(fieldErrors) > 0 {
		common.RespErrorCodeWithData(c, http.StatusBadRequest, apierrors.ErrValidation, "validation failed", fieldErrors)
		return
	}

	owner, err := model.GetUserById(id)
	if err != nil {
		common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrUserNotFound, "user not found")
		return
	}

	if err := service.CreateShare(owner, req.FileId, req.RecipientEmail, req.ExpirationHours, req.Message); err != nil {
		if errors.Is(err, model.ErrFileNotFound) {
			common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrNotFound, "file not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to share file", err)
		return
	}
	common.RespCreated(c, "file shared and email sent", nil)
}

func ListSharedFiles(c *gin.Context) {
	id, ok := currentUserId(c)
	if !ok {
		return
	}
	entries, err := service.ListShares(id)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list shares", err)
		return
	}
	common.RespSuccess(c, entries)
}

// DownloadSharedFile is the unauthenticated retrieval endpoint: a valid,
// unexpired token streams the blob as an attachment.
func DownloadSharedFile(c *gin.Context) {
	token := c.Param("token")

	fileRecord, fullPath, err := service.RetrieveShared(token)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrShareNotFound):
			common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrNotFound, "share link not found")
		case errors.Is(err, service.ErrShareExpired):
			common.RespErrorCode(c, http.StatusForbidden, apierrors.ErrLinkExpired, "share link expired")
		default:
			common.RespError(c, http.StatusInternalServerError, "failed to resolve share link", err)
		}
		return
	}
	c.FileAttachment(fullPath, fileRecord.Filename)
}
