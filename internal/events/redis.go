package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type redisPublisher struct {
	client  *redis.Client
	channel string
}

// ConnectRedis - opens a client and checks it with a ping.
func ConnectRedis(ctx context.Context, conf config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.GetRedisAddr(),
		Password: conf.Password,
		DB:       conf.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewRedisPublisher - publishes every event as JSON on a single Pub/Sub channel.
func NewRedisPublisher(client *redis.Client, channel string) Publisher {
	return &redisPublisher{
		client:  client,
		channel: channel,
	}
}

func (that *redisPublisher) Publish(ctx context.Context, event entity.RoomEvent) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	if err = that.client.Publish(ctx, that.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to redis channel %s: %w", that.channel, err)
	}

	return nil
}

func (that *redisPublisher) Close() error {
	if err := that.client.Close(); err != nil {
		return fmt.Errorf("could not close redis client: %w", err)
	}

	return nil
}
