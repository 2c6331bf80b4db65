package socket

import (
	"context"
	"encoding/json"

	"messageboard/internal/message/model"
	"messageboard/internal/metrics"
	"messageboard/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	MessageCreatedType = "MESSAGE_CREATED" // A message was saved

	broadcastBuffer = 256
	sendBuffer      = 256
)

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans saved messages out to every connected subscriber. All
// subscriber bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan WSMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WSMessage, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until ctx is cancelled, then disconnects every
// subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			logger.Sugar.Info("Live feed hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = true
			metrics.SetLiveSubscribers(len(h.clients))
			logger.Sugar.Debugf("Live feed subscriber joined (%d connected)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				logger.Sugar.Debugf("Live feed subscriber left (%d connected)", len(h.clients))
			}

		case msg := <-h.broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// The subscriber is lagging; drop it rather than block the hub.
					logger.Sugar.Warn("Subscriber send buffer is full. Disconnecting.")
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	metrics.SetLiveSubscribers(len(h.clients))
}

// Publish queues msg for every subscriber. It never blocks: when the
// broadcast buffer is full the event is dropped.
func (h *Hub) Publish(msg model.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling message %s: %v", msg.ID, err)
		return
	}
	select {
	case h.broadcast <- WSMessage{Type: MessageCreatedType, Payload: payload}:
	default:
		logger.Sugar.Warnf("Live feed buffer is full, dropping message %s", msg.ID)
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
