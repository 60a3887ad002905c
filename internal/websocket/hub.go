package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"dating-app-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chat_cluster_events"

// Hub tracks live connections per chat room and fans messages out to them.
// With Redis available, broadcasts also reach rooms held by other instances.
type Hub struct {
	// RoomID -> connected clients (both participants, multi-device)
	rooms map[uint][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Instance identity, used to skip our own cluster echoes
	id string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[uint][]*Client),
		rdb:        rdb,
		id:         uuid.NewString(),
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
			h.rooms[client.RoomID] = append(h.rooms[client.RoomID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"room_id": client.RoomID,
				"user_id": client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.RoomID]; ok {
				for i, c := range clients {
					if c == client {
						h.rooms[client.RoomID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.rooms[client.RoomID]) == 0 {
					delete(h.rooms, client.RoomID)
				}
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
				"room_id": client.RoomID,
				"user_id": client.UserID,
			})
		}
	}
}

// BroadcastRoom delivers data to every local client of the room and relays it
// to the rest of the cluster.
func (h *Hub) BroadcastRoom(roomId uint, data []byte) {
	h.deliverLocal(roomId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{
			Origin:  h.id,
			RoomID:  roomId,
			Message: data,
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (h *Hub) deliverLocal(roomId uint, data []byte) {
	h.mu.RLock()
	clients := h.rooms[roomId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
				"room_id": roomId,
				"user_id": client.UserID,
			})
			h.unregister <- client
		}
	}
}

type clusterEnvelope struct {
	Origin  string          `json:"origin"`
	RoomID  uint            `json:"room_id"`
	Message json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		// Local clients already got our own broadcast.
		if payload.Origin == h.id {
			continue
		}
		h.deliverLocal(payload.RoomID, payload.Message)
	}
}
