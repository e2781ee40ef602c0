// Package ws pushes record-created events to connected dashboard clients so
// admin screens refresh without polling.
package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var HubInstance = NewHub()

func init() {
	go HubInstance.Run()
}

// Client is one connected dashboard.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks clients and fans broadcast messages out to them.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Debug().Msg("Dashboard client connected")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Debug().Msg("Dashboard client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// BroadcastEvent serializes an event envelope onto the hub. Marshal failures
// are logged and dropped; a push feed must never fail the originating request.
func BroadcastEvent(event string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Failed to marshal dashboard event")
		return
	}
	select {
	case HubInstance.Broadcast <- payload:
	default:
	}
}
