package redis

import (
	"context"
	"fmt"

	"mall_social_server/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// redisClient 全局 Redis 客户端
var redisClient *redis.Client

// Svc 全局异步缓存服务实例
var Svc AsyncCacheService

// Init 初始化 Redis 连接并启动缓存 Worker Pool
func Init() {
	conf := config.GetConfig()

	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.RedisConfig.Host, conf.RedisConfig.Port),
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		zap.L().Fatal("redis connect failed", zap.Error(err))
	}

	initCacheWorker(4, 256)
	Svc = &redisCacheService{client: redisClient}
}
