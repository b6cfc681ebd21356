package gateway

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureBroker struct {
	mu        sync.Mutex
	delivered []capturedDelivery
	err       error
}

type capturedDelivery struct {
	userID   uuid.UUID
	envelope *Envelope
}

func (b *captureBroker) Publish(userID uuid.UUID, envelope *Envelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.delivered = append(b.delivered, capturedDelivery{userID: userID, envelope: envelope})
	return nil
}

func TestBusPublishSharedSequence(t *testing.T) {
	broker := &captureBroker{}
	bus := NewBus(broker)

	userA := uuid.New()
	userB := uuid.New()

	bus.Publish([]uuid.UUID{userA, userB}, map[string]string{"content": "hi"}, EventMessageCreate)
	bus.Close()

	require.Len(t, broker.delivered, 2)

	first, second := broker.delivered[0], broker.delivered[1]
	assert.Equal(t, userA, first.userID)
	assert.Equal(t, userB, second.userID)

	// Один вызов Publish — один номер последовательности для всех получателей
	assert.Equal(t, first.envelope.Seq, second.envelope.Seq)
	assert.Equal(t, OpcodeDispatch, first.envelope.Op)
	assert.Equal(t, EventMessageCreate, first.envelope.Type)
}

func TestBusSequenceIncreasesAcrossPublishes(t *testing.T) {
	broker := &captureBroker{}
	bus := NewBus(broker)

	user := uuid.New()

	bus.Publish([]uuid.UUID{user}, "first", EventMessageCreate)
	bus.Publish([]uuid.UUID{user, user}, "second", EventMessageUpdate)
	bus.Publish([]uuid.UUID{user}, "third", EventMessageDelete)
	bus.Close()

	require.Len(t, broker.delivered, 4)

	// Порядок доставки совпадает с порядком вызовов Publish
	assert.Equal(t, "first", broker.delivered[0].envelope.Data)
	assert.Equal(t, "second", broker.delivered[1].envelope.Data)
	assert.Equal(t, "second", broker.delivered[2].envelope.Data)
	assert.Equal(t, "third", broker.delivered[3].envelope.Data)

	assert.Less(t, broker.delivered[0].envelope.Seq, broker.delivered[1].envelope.Seq)
	assert.Less(t, broker.delivered[2].envelope.Seq, broker.delivered[3].envelope.Seq)
}

func TestBusSwallowsBrokerErrors(t *testing.T) {
	broker := &captureBroker{err: errors.New("connection lost")}
	bus := NewBus(broker)

	// Не должно ни паниковать, ни блокироваться
	bus.Publish([]uuid.UUID{uuid.New()}, "payload", EventMessageCreate)
	bus.Close()

	assert.Empty(t, broker.delivered)
}

func TestEnvelopeWireShape(t *testing.T) {
	envelope := &Envelope{
		Op:   OpcodeDispatch,
		Data: map[string]string{"content": "hi"},
		Seq:  7,
		Type: EventMessageCreate,
	}

	data, err := json.Marshal(envelope)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "op")
	assert.Contains(t, decoded, "d")
	assert.Contains(t, decoded, "s")
	assert.Contains(t, decoded, "t")
	assert.Len(t, decoded, 4)
}
