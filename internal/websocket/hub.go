package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/pkg/camera"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans camera frames and status messages out to every connected
// renderer screen. It is the animator's PoseSink.
type Hub struct {
	// Registered renderer screens
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for multi-screen installations: frames published
	// here reach the screens attached to other backend instances.
	rdb *redis.Client

	// Instance id so our own relayed frames are dropped on re-receipt.
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
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
			h.clients[client.ScreenID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Screen registered", map[string]interface{}{"screen_id": client.ScreenID})

		case client := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[client.ScreenID]; ok && c == client {
				delete(h.clients, client.ScreenID)
				close(client.Send)
				h.logger.Info("Hub", "Screen unregistered", map[string]interface{}{"screen_id": client.ScreenID})
			}
			h.mu.Unlock()
		}
	}
}

// PushPose implements camera.PoseSink: every interpolated frame of a
// transition lands here and is forwarded to all screens.
func (h *Hub) PushPose(pose camera.Pose, final bool) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":  "pose",
		"final": final,
		"data":  pose,
	})
	h.broadcastLocal(data, true)
	h.publishToRedis(data)
}

// BroadcastStatus sends transient UI state: save_failed, idle_entered,
// config_updated, selection changes.
func (h *Hub) BroadcastStatus(kind string, payload map[string]interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "status",
		"kind": kind,
		"data": payload,
	})
	h.broadcastLocal(data, false)
	h.publishToRedis(data)
}

// broadcastLocal delivers to directly connected screens. Pose frames honor
// each client's drive suppression; status frames always go through.
func (h *Hub) broadcastLocal(data []byte, respectSuppression bool) {
	var stalled []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		if respectSuppression && client.driven() {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Screen stopped draining; drop it rather than block the feed.
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.unregister <- client
	}
}

func (h *Hub) publishToRedis(data []byte) {
	if h.rdb == nil {
		return
	}
	payload := map[string]interface{}{
		"instance_id": h.instanceID,
		"message":     data,
	}
	jsonPayload, _ := json.Marshal(payload)
	h.rdb.Publish(context.Background(), "kiosk_frames", jsonPayload)
}

// subscribeToRedis forwards frames published by sibling instances to the
// local screens, skipping our own echoes.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "kiosk_frames")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			InstanceID string          `json:"instance_id"`
			Message    json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if payload.InstanceID == h.instanceID {
			continue
		}
		h.broadcastLocal(payload.Message, true)
	}
}
