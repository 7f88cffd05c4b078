package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"babyname-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// fanoutChannel carries favorite updates between instances via redis pub/sub.
const fanoutChannel = "favorite_events"

// Hub fans favorite updates out to connected browsers. Clients are grouped by
// session id; the guest flow means most deployments see a single group.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fanout, nil for single-instance.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionId] = append(h.clients[client.SessionId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionId]) == 0 {
					delete(h.clients, client.SessionId)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a payload to every connected client and relays it to other
// instances through redis.
func (h *Hub) Broadcast(payload []byte) {
	h.deliverAll(payload)

	if h.rdb != nil {
		wrapped, _ := json.Marshal(fanoutMessage{SessionId: "*", Message: payload})
		h.rdb.Publish(context.Background(), fanoutChannel, wrapped)
	}
}

// SendToSession targets one session's connections, local and remote.
func (h *Hub) SendToSession(sessionId string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[sessionId]
	h.mu.RUnlock()
	for _, client := range clients {
		h.deliver(client, payload)
	}

	if h.rdb != nil {
		wrapped, _ := json.Marshal(fanoutMessage{SessionId: sessionId, Message: payload})
		h.rdb.Publish(context.Background(), fanoutChannel, wrapped)
	}
}

type fanoutMessage struct {
	SessionId string          `json:"session_id"`
	Message   json.RawMessage `json:"message"`
}

func (h *Hub) deliverAll(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.deliver(client, payload)
		}
	}
}

func (h *Hub) deliver(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		// Slow consumer; drop the connection rather than block the hub.
		// Run owns close(client.Send), and the handoff must not block while
		// the caller holds the read lock Run needs to process it.
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, fanoutChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload fanoutMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.SessionId == "*" {
			h.deliverAll(payload.Message)
			continue
		}

		h.mu.RLock()
		clients := h.clients[payload.SessionId]
		h.mu.RUnlock()
		for _, client := range clients {
			h.deliver(client, payload.Message)
		}
	}
}
