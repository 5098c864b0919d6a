package redis

import (
	"context"
	"errors"
	"time"

	"mall_social_server/pkg/errorx"

	"github.com/go-redis/redis/v8"
)

// redisCacheService CacheService 的 Redis 实现
type redisCacheService struct {
	client *redis.Client
}

// Set 设置键值对并指定过期时间
func (s *redisCacheService) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set %s", key)
	}
	return nil
}

// Get 获取键对应的值（键不存在返回空字符串和 nil）
func (s *redisCacheService) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get %s", key)
	}
	return val, nil
}

// GetOrError 获取键对应的值（键不存在返回错误）
func (s *redisCacheService) GetOrError(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get %s", key)
	}
	return val, nil
}

// Delete 删除键（如果存在）
func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis del %s", key)
	}
	return nil
}

// DeleteByPattern 删除匹配模式的所有键
// 使用 SCAN 渐进遍历，避免 KEYS 阻塞
func (s *redisCacheService) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return errorx.Wrapf(err, errorx.CodeCacheError, "redis del %s", iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis scan %s", pattern)
	}
	return nil
}

// SubmitTask 提交异步缓存任务
func (s *redisCacheService) SubmitTask(action func()) {
	SubmitCacheTask(action)
}
