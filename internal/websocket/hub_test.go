package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"swish-api/internal/models"
	"swish-api/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *repository.EventPublisher) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	publisher := repository.NewEventPublisher(client)
	return NewHub(publisher), publisher
}

func TestHubRegisterUnregister(t *testing.T) {
	hub, _ := newTestHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	hub.unregister <- client

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	// Unregistering closes the send channel.
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubBroadcastsCompletionEvents(t *testing.T) {
	hub, publisher := newTestHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	event := models.CompletionEvent{
		Type:     "game_completed",
		GameID:   12,
		UserID:   4,
		Username: "ace",
		GameMode: models.ModeTimeAttack,
		Score:    650,
	}

	// The subscription races hub startup; publish until the client sees it.
	var payload []byte
	require.Eventually(t, func() bool {
		require.NoError(t, publisher.PublishCompletion(ctx, event))
		select {
		case payload = <-client.send:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	var got models.CompletionEvent
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, event, got)
}

func TestHubShutdownDisconnectsClients(t *testing.T) {
	hub, _ := newTestHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open)
}
