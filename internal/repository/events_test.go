package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"swish-api/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T) *EventPublisher {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewEventPublisher(client)
}

func TestEventPublisherPing(t *testing.T) {
	publisher := newTestPublisher(t)
	assert.NoError(t, publisher.Ping(context.Background()))
}

func TestEventPublisherRoundTrip(t *testing.T) {
	publisher := newTestPublisher(t)
	ctx := context.Background()

	sub := publisher.Subscribe(ctx)
	defer sub.Close()

	// Make sure the subscription is live before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := models.CompletionEvent{
		Type:       "game_completed",
		GameID:     7,
		UserID:     3,
		Username:   "ace",
		GameMode:   models.ModeClassic,
		Difficulty: models.DifficultyHard,
		Score:      1200,
	}
	require.NoError(t, publisher.PublishCompletion(ctx, event))

	recvCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	msg, err := sub.ReceiveMessage(recvCtx)
	require.NoError(t, err)
	assert.Equal(t, EventChannel, msg.Channel)

	var got models.CompletionEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, event, got)
}
