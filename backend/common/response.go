package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with. Code carries a
// stable machine-readable error code on failures; clients switch on it
// instead of parsing Message.
type APIResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "",
		Data:    data,
	})
}

func RespSuccessStr(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
	})
}

func RespCreated(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func RespError(c *gin.Context, statusCode int, msg string, err error) {
	errMsg := msg
	if err != nil {
		errMsg = msg + ": " + err.Error()
	}

	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: errMsg,
	})
}

func RespErrorStr(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
	})
}

func RespErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
		Data:    data,
	})
}

func RespErrorCode(c *gin.Context, statusCode int, code string, msg string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Code:    code,
		Message: msg,
	})
}

func RespErrorCodeWithData(c *gin.Context, statusCode int, code string, msg string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Code:    code,
		Message: msg,
		Data:    data,
	})
}
