package gateway

import (
	"log"
	"sync/atomic"

	"github.com/google/uuid"
)

// Broker доставляет конверт на активные соединения пользователя
type Broker interface {
	Publish(userID uuid.UUID, envelope *Envelope) error
}

type delivery struct {
	userID   uuid.UUID
	envelope *Envelope
}

// Bus раздаёт события получателям через одного фонового диспетчера,
// поэтому порядок доставки совпадает с порядком вызовов Publish.
type Bus struct {
	broker Broker
	seq    atomic.Int64
	queue  chan delivery
	done   chan struct{}
}

func NewBus(broker Broker) *Bus {
	b := &Bus{
		broker: broker,
		queue:  make(chan delivery, 256),
		done:   make(chan struct{}),
	}
	go b.run()
	return b
}

// Publish строит конверт и ставит доставку каждому получателю в очередь.
// Один номер последовательности на вызов: все получатели видят одинаковый s.
// Возвращается после постановки в очередь, не после доставки.
func (b *Bus) Publish(recipients []uuid.UUID, payload interface{}, eventType string) {
	envelope := &Envelope{
		Op:   OpcodeDispatch,
		Data: payload,
		Seq:  b.seq.Add(1),
		Type: eventType,
	}

	for _, userID := range recipients {
		b.queue <- delivery{userID: userID, envelope: envelope}
	}
}

func (b *Bus) run() {
	defer close(b.done)

	for d := range b.queue {
		// Сбой доставки не должен ронять уже закоммиченную мутацию
		if err := b.broker.Publish(d.userID, d.envelope); err != nil {
			log.Printf("gateway: publish to user %s failed: %v", d.userID, err)
		}
	}
}

// Close дожидается, пока диспетчер разгребёт очередь
func (b *Bus) Close() {
	close(b.queue)
	<-b.done
}
