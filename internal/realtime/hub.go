package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub manages WebSocket connections and pipes broker events to them. Each
// client subscribes to a set of collections when it connects.
type Hub struct {
	broker *Broker

	mu    sync.RWMutex
	conns map[string]*client
}

type client struct {
	conn *websocket.Conn
	subs []*Subscription
	done chan struct{}

	writeMu sync.Mutex
	closeMu sync.Once
}

func NewHub(broker *Broker) *Hub {
	return &Hub{
		broker: broker,
		conns:  make(map[string]*client),
	}
}

// Register attaches a WebSocket connection for a user and starts forwarding
// events for the requested collections. An existing connection for the same
// user is closed first.
func (h *Hub) Register(userID string, conn *websocket.Conn, collections []string) {
	h.mu.Lock()
	if existing, ok := h.conns[userID]; ok {
		existing.teardown()
	}

	c := &client{conn: conn, done: make(chan struct{})}
	for _, collection := range collections {
		c.subs = append(c.subs, h.broker.Subscribe(collection, nil))
	}
	h.conns[userID] = c
	h.mu.Unlock()

	log.Info().Str("user_id", userID).Strs("collections", collections).
		Msg("realtime connection registered")

	for _, sub := range c.subs {
		go h.forward(userID, c, sub)
	}
}

// Unregister tears down a user's connection and its subscriptions.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.conns[userID]; ok {
		c.teardown()
		delete(h.conns, userID)
		log.Info().Str("user_id", userID).Msg("realtime connection unregistered")
	}
}

// SendToUser pushes one event to a specific connected user.
func (h *Hub) SendToUser(userID string, event Event) error {
	h.mu.RLock()
	c, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not connected", userID)
	}
	return h.write(userID, c, event)
}

// IsOnline checks if a user has a live connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

func (h *Hub) forward(userID string, c *client, sub *Subscription) {
	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if err := h.write(userID, c, event); err != nil {
				h.Unregister(userID)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (h *Hub) write(userID string, c *client, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("realtime write failed")
		return err
	}
	return nil
}

func (c *client) teardown() {
	c.closeMu.Do(func() {
		close(c.done)
		for _, sub := range c.subs {
			sub.Close()
		}
		c.conn.Close()
	})
}
