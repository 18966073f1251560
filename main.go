package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/api/middleware"
	"github.com/najilx/file-share-webapp/backend/api/route"
	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/model"
)

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog("Sharebox " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := common.LoadConfigFile(); err != nil {
		common.FatalLog(err)
	}
	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.SysError("failed to close database: " + err.Error())
		}
	}()

	server := gin.Default()
	server.Use(middleware.CORS())

	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		store, err := redis.NewStore(opt.MinIdleConns, opt.Network, opt.Addr, opt.Username, opt.Password, []byte(common.SessionSecret))
		if err != nil {
			common.FatalLog(err)
		}
		server.Use(sessions.Sessions("session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	}

	route.SetRouter(server)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(*common.Port),
		Handler: server,
	}

	go func() {
		common.SysLog("listening on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.FatalLog(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	common.SysLog("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		common.SysError("forced shutdown: " + err.Error())
	}
}
