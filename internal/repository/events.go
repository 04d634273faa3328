package repository

import (
	"context"
	"encoding/json"

	"swish-api/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// EventChannel is the Redis pub/sub channel carrying game completion
	// events to websocket subscribers
	EventChannel = "swish:leaderboard:events"
)

// EventPublisher fans game completion events out over Redis pub/sub.
// The API works without it; publishing failures are never surfaced to
// request handlers.
type EventPublisher struct {
	client *redis.Client
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{
		client: client,
	}
}

// PublishCompletion publishes a completion event to the event channel
func (p *EventPublisher) PublishCompletion(ctx context.Context, event models.CompletionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, EventChannel, payload).Err()
}

// Subscribe opens a subscription on the event channel
func (p *EventPublisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.client.Subscribe(ctx, EventChannel)
}

// Ping checks if Redis is reachable
func (p *EventPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (p *EventPublisher) Close() error {
	return p.client.Close()
}
