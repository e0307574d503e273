package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/credfile-backend/internal/pkg/logger"
	"github.com/yungbote/credfile-backend/internal/utils"
)

type redisStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewRedisStore connects to the redis settings backend configured through
// REDIS_ADDR / REDIS_SETTINGS_PREFIX.
func NewRedisStore(log *logger.Logger) (Store, error) {
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(utils.GetEnv("REDIS_SETTINGS_PREFIX", "settings:", log))

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{
		log:    log.With("service", "RedisSettingsStore"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			s.log.Warn("settings read failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}
