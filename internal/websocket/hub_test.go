package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/pelican/internal/gateway"
)

func TestHubStopClosesSendOnce(t *testing.T) {
	hub := NewHub()

	userID := uuid.New()
	first := NewClient(hub, nil, userID)
	second := NewClient(hub, nil, userID)
	hub.Register(first)
	hub.Register(second)

	// Первый сокет обрывается до остановки хаба, второй — после
	hub.Unregister(first)

	require.NotPanics(t, func() {
		hub.Stop()
		hub.Unregister(second)
	})

	_, open := <-first.Send
	assert.False(t, open)
	_, open = <-second.Send
	assert.False(t, open)

	assert.False(t, hub.IsOnline(userID))
}

func TestHubRejectsRegisterAfterStop(t *testing.T) {
	hub := NewHub()
	hub.Stop()

	client := NewClient(hub, nil, uuid.New())
	hub.Register(client)

	_, open := <-client.Send
	assert.False(t, open)
	assert.False(t, hub.IsOnline(client.UserID))
}

func TestHubPublishToAllUserConnections(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()
	bob := uuid.New()

	first := NewClient(hub, nil, alice)
	second := NewClient(hub, nil, alice)
	other := NewClient(hub, nil, bob)
	hub.Register(first)
	hub.Register(second)
	hub.Register(other)

	envelope := &gateway.Envelope{
		Op:   gateway.OpcodeDispatch,
		Seq:  7,
		Type: gateway.EventMessageCreate,
	}
	require.NoError(t, hub.Publish(alice, envelope))

	for _, client := range []*Client{first, second} {
		select {
		case raw := <-client.Send:
			assert.Contains(t, string(raw), `"s":7`)
			assert.Contains(t, string(raw), `"t":"MESSAGE_CREATE"`)
		default:
			t.Fatalf("client %s got no delivery", client.ID)
		}
	}

	assert.Empty(t, other.Send)
}
