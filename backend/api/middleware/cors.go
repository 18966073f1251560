package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/common"
)

// allowedOrigins resolves the configured origin list, falling back to the
// frontend's own origin. Credentialed requests must never reflect arbitrary
// origins, so there is no allow-all mode.
func allowedOrigins() map[string]bool {
	origins := make(map[string]bool)
	for _, origin := range strings.Split(common.CORSAllowOrigins, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins[strings.ToLower(origin)] = true
		}
	}
	if len(origins) == 0 {
		origins[strings.ToLower(strings.TrimRight(common.FrontendBaseURL, "/"))] = true
	}
	return origins
}

func CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowCredentials = true
	origins := allowedOrigins()
	config.AllowOriginFunc = func(origin string) bool {
		return origins[strings.ToLower(strings.TrimRight(origin, "/"))]
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return cors.New(config)
}
