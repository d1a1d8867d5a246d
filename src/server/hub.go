package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"corona-observer/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				client.close()
			}
			s.connections.Store(0)
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.connections.Store(int64(len(s.clients)))
			// Send current state on connect
			s.stateMutex.RLock()
			initial := *s.latestState
			s.stateMutex.RUnlock()
			initial.Type = models.PayloadInitial
			client.enqueue(&initial)

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				client.close()
			}
			s.connections.Store(int64(len(s.clients)))

		case message := <-s.broadcast:
			for client := range s.clients {
				if !client.enqueue(message) {
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					client.close()
				}
			}
			s.connections.Store(int64(len(s.clients)))
		}
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan interface{}, 256),
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	var response *models.MCountryPayload
	switch cmd.Command {
	case "country":
		response = s.countryResponse(cmd.Country)
	default:
		response = &models.MCountryPayload{
			Type:  models.PayloadError,
			Error: fmt.Sprintf("unknown command %q", cmd.Command),
		}
	}

	if !client.enqueue(response) {
		s.Logger.Warning("Client buffer full, dropping %s response", cmd.Command)
	}
}

// -----------------------------------------------------------------------------

func (s *APIServer) countryResponse(name string) *models.MCountryPayload {
	ds := s.currentDataset()
	if ds == nil {
		return &models.MCountryPayload{Type: models.PayloadError, Error: "dataset not loaded yet"}
	}

	country := findCountry(ds, name)
	if country == nil {
		return &models.MCountryPayload{Type: models.PayloadError, Error: fmt.Sprintf("unknown country %q", name)}
	}

	return &models.MCountryPayload{
		Type:    models.PayloadCountry,
		Country: country,
		Dates:   ds.Headers,
	}
}
