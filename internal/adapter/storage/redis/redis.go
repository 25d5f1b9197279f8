package redis

import (
	"context"
	"fmt"

	"payment-router/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient connects to a single node, or to a cluster when cfg.Addrs
// lists more than one node, and pings it before returning.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (goredis.UniversalClient, error) {
	addrs := cfg.Addrs
	if len(addrs) == 0 {
		addrs = []string{cfg.Addr()}
	}
	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:    addrs,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis %v: %w", addrs, err)
	}

	log.Info().Strs("addrs", addrs).Int("db", cfg.DB).Msg("Redis connection established")
	return client, nil
}
