package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/common"
	apierrors "github.com/najilx/file-share-webapp/backend/common/errors"
	"github.com/najilx/file-share-webapp/backend/model"
	"github.com/najilx/file-share-webapp/backend/service"
)

// uploadFailure names one file of a batch that was rejected, with the
// reason. The rest of the batch is unaffected.
type uploadFailure struct {
	Filename string `json:"filename"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// UploadFiles accepts one or more files under the multipart field "files".
// Every file is validated independently; a mixed outcome answers 207 with
// per-file results rather than failing the whole request.
func UploadFiles(c *gin.Context) {
	id, ok := currentUserId(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid multipart form: "+err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "no files uploaded")
		return
	}

	uploaded := make([]*model.File, 0, len(files))
	failures := make([]uploadFailure, 0)
	for _, fileHeader := range files {
		fileRecord, err := service.UploadAndRecordFile(c, id, fileHeader)
		if err != nil {
			code := apierrors.ErrInternalServer
			if errors.Is(err, service.ErrFileTooLarge) || errors.Is(err, service.ErrQuotaExceeded) {
				code = apierrors.ErrQuotaExceeded
			}
			common.SysError(fmt.Sprintf("upload of %s for user %d failed: %s", fileHeader.Filename, id, err.Error()))
			failures = append(failures, uploadFailure{
				Filename: fileHeader.Filename,
				Code:     code,
				Message:  err.Error(),
			})
			continue
		}
		uploaded = append(uploaded, fileRecord)
	}

	payload := gin.H{"uploaded": uploaded, "errors": failures}
	switch {
	case len(failures) == 0:
		common.RespCreated(c, "", payload)
	case len(uploaded) == 0:
		// The envelope code reflects what actually went wrong: limit
		// rejections stay a client error, anything else is ours.
		status := http.StatusBadRequest
		code := apierrors.ErrQuotaExceeded
		for _, failure := range failures {
			if failure.Code == apierrors.ErrInternalServer {
				status = http.StatusInternalServerError
				code = apierrors.ErrInternalServer
				break
			}
		}
		common.RespErrorCodeWithData(c, status, code, "all uploads failed", payload)
	default:
		c.JSON(http.StatusMultiStatus, common.APIResponse{
			Success: true,
			Message: "some uploads failed",
			Data:    payload,
		})
	}
}

func ListFiles(c *gin.Context) {
	id, ok := currentUserId(c)
	if !ok {
		return
	}
	files, err := model.ListFilesForUser(id, c.Query("search"))
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list files", err)
		return
	}
	common.RespSuccess(c, files)
}

func DeleteFile(c *gin.Context) {
	id, ok := currentUserId(c)
	if !ok {
		return
	}
	fileId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid file id")
		return
	}

	if err := service.DeleteFile(id, fileId); err != nil {
		if errors.Is(err, model.ErrFileNotFound) {
			common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrNotFound, "file not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to delete file", err)
		return
	}
	common.RespSuccessStr(c, "file deleted")
}

func DownloadFile(c *gin.Context) {
	id, ok := currentUserId(c)
	if !ok {
		return
	}
	fileId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, apierrors.ErrInvalidParam, "invalid file id")
		return
	}

	fileRecord, fullPath, err := service.ResolveDownload(id, fileId)
	if err != nil {
		if errors.Is(err, model.ErrFileNotFound) {
			common.RespErrorCode(c, http.StatusNotFound, apierrors.ErrNotFound, "file not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to resolve file", err)
		return
	}
	c.FileAttachment(fullPath, fileRecord.Filename)
}
