package common

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var RedisEnabled = true

// InitRedisClient connects to redis when REDIS_CONN_STRING is set; otherwise
// redis-backed features (shared session store, JWT logout blacklist) are
// disabled and everything falls back to in-process equivalents.
func InitRedisClient() (err error) {
	redisConn := os.Getenv("REDIS_CONN_STRING")
	if redisConn == "" {
		RedisEnabled = false
		SysLog("REDIS_CONN_STRING not set, redis is not enabled")
		return nil
	}
	opt, err := redis.ParseURL(redisConn)
	if err != nil {
		FatalLog("failed to parse redis connection string: " + err.Error())
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = RDB.Ping(ctx).Result()
	if err != nil {
		return err
	}
	SysLog("redis connection established")
	return nil
}

func ParseRedisOption() *redis.Options {
	opt, err := redis.ParseURL(os.Getenv("REDIS_CONN_STRING"))
	if err != nil {
		FatalLog("failed to parse redis connection string: " + err.Error())
	}
	return opt
}
