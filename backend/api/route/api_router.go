package route

import (
	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/api/handler"
	"github.com/najilx/file-share-webapp/backend/api/middleware"
)

func SetApiRouter(router *gin.Engine) {
	apiRouter := router.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		userRoute := apiRouter.Group("/user")
		{
			critical := middleware.CriticalRateLimit()
			userRoute.POST("/register", critical, handler.Register)
			userRoute.POST("/login", critical, handler.Login)
			userRoute.POST("/forgot-password", critical, handler.ForgotPassword)
			userRoute.POST("/reset-password/:id/:token", critical, handler.ResetPassword)
			userRoute.POST("/token/refresh", handler.RefreshToken)

			authRoute := userRoute.Group("/")
			authRoute.Use(middleware.UserAuth())
			{
				authRoute.GET("/logout", handler.Logout)
				authRoute.GET("/self", handler.GetSelf)
				authRoute.POST("/change-password", handler.ChangePassword)
			}
		}

		fileRoute := apiRouter.Group("/files")
		{
			// Public token retrieval is the one unauthenticated file route.
			fileRoute.GET("/shared/:token", handler.DownloadSharedFile)

			authRoute := fileRoute.Group("/")
			authRoute.Use(middleware.UserAuth())
			{
				authRoute.POST("/upload", handler.UploadFiles)
				authRoute.GET("/list", handler.ListFiles)
				authRoute.DELETE("/delete/:id", handler.DeleteFile)
				authRoute.GET("/download/:id", handler.DownloadFile)
				authRoute.POST("/share", handler.ShareFile)
				authRoute.GET("/shared-list", handler.ListSharedFiles)
			}
		}
	}
}
