package route

import (
	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/api/middleware"
	"github.com/najilx/file-share-webapp/backend/common"
)

func SetRouter(router *gin.Engine) {
	if common.EnableGzip {
		router.Use(middleware.GzipEncode())
	}
	SetApiRouter(router)
}
