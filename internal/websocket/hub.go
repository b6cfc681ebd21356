package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/gateway"
)

// Hub держит активные соединения. Членство в каналах живёт в базе,
// хаб знает только какие сокеты принадлежат какому пользователю.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client

	// Клиенты по UserID (один пользователь может иметь несколько соединений)
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	closed bool
}

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
	}
}

// Register регистрирует нового клиента. После Stop новые соединения
// не принимаются: их Send-канал сразу закрывается.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(client.Send)
		return
	}

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

// Unregister убирает соединение; повторный вызов для того же клиента — no-op
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(client)
}

// Stop закрывает все соединения. Send-канал каждого клиента закрывается
// ровно один раз: сокет после этого завершает его же WritePump.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, client := range h.clients {
		h.remove(client)
	}
}

// remove вызывается только под h.mu
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
}

// Publish реализует gateway.Broker: конверт уходит на все соединения пользователя
func (h *Hub) Publish(userID uuid.UUID, envelope *gateway.Envelope) error {
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	h.SendToUser(userID, data)
	return nil
}

// SendToUser отправляет сообщение на все соединения пользователя
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

// GetOnlineUsers возвращает список онлайн пользователей
func (h *Hub) GetOnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

// IsOnline сообщает, есть ли у пользователя хоть одно активное соединение
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.userClients[userID]) > 0
}
