package infra_redis_init

import (
	"net"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/moviematch/internal/config"
)

func NewClient(cfg config.RedisCache) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})
}
