// Package redisbus implements the realtime bus over redis pub/sub, for
// deployments where order events must reach subscribers in other processes
// (websocket gateways, worker fleets). Channel names come from
// realtime.Channel.String(); events travel as JSON.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"munchies/internal/realtime"
)

// Config holds the redis connection settings.
type Config struct {
	Addr     string
	Password string // optional
	DB       int    // optional
}

// NewClient connects to redis and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Bus is a realtime.Bus backed by redis pub/sub. Unlike the in-memory bus,
// delivery is asynchronous: handlers run on a per-subscription goroutine fed
// from the redis connection.
//
// Publishing writes each event twice, once on the specific channel and once
// on the wildcard channel, because redis fan-out is name-based and cannot
// union channels server-side.
type Bus struct {
	client *redis.Client
	logger *slog.Logger
}

// NewBus creates a Bus on an established client.
func NewBus(client *redis.Client, logger *slog.Logger) *Bus {
	return &Bus{client: client, logger: logger}
}

// Publish sends event to channel and, for non-wildcard channels, to the
// wildcard channel as well. Failures are logged, not returned: callers
// publish after commit and treat delivery as best-effort, same as the
// in-memory bus.
func (b *Bus) Publish(channel realtime.Channel, event realtime.OrderEvent) {
	ctx := context.Background()

	body, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("marshal order event", "channel", channel.String(), "error", err)
		return
	}

	targets := []string{channel.String()}
	if !channel.IsAll() {
		targets = append(targets, realtime.AllOrders().String())
	}

	for _, target := range targets {
		if err := b.client.Publish(ctx, target, body).Err(); err != nil {
			b.logger.Error("publish order event", "channel", target, "error", err)
		}
	}
}

// Subscribe attaches handler to channel. Events arrive on a dedicated
// goroutine; the returned function closes the subscription and stops it.
func (b *Bus) Subscribe(channel realtime.Channel, handler realtime.Handler) func() {
	pubsub := b.client.Subscribe(context.Background(), channel.String())

	go func() {
		for msg := range pubsub.Channel() {
			var event realtime.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Error("unmarshal order event", "channel", msg.Channel, "error", err)
				continue
			}
			handler(event)
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil {
			b.logger.Error("close subscription", "channel", channel.String(), "error", err)
		}
	}
}
