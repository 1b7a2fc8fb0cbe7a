package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tablegames/blackjack-table-be/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now, customize this in production
	},
}

// Message represents a WebSocket message
type Message struct {
	Type    string      `json:"type"`
	TableID string      `json:"tableId,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	tableID string
	hub     *Hub
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	tables     map[string]map[*Client]bool
	logger     *log.Logger
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		tables:     make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if client.tableID != "" {
				if _, exists := h.tables[client.tableID]; !exists {
					h.tables[client.tableID] = make(map[*Client]bool)
				}
				h.tables[client.tableID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				if client.tableID != "" && h.tables[client.tableID] != nil {
					delete(h.tables[client.tableID], client)
					if len(h.tables[client.tableID]) == 0 {
						delete(h.tables, client.tableID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToTable sends a message to all clients watching a specific table
func (h *Hub) BroadcastToTable(tableID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("error marshaling message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if tableClients, exists := h.tables[tableID]; exists {
		for client := range tableClients {
			select {
			case client.send <- data:
			default:
				// If client buffer is full, we'll handle on next write
			}
		}
	}
}

// BroadcastTableUpdate sends the current table state, plus the round result
// when one just settled, to every watcher of the table.
func (h *Hub) BroadcastTableUpdate(t *game.Table, result *game.RoundResult) {
	data := map[string]interface{}{
		"table": t.Snapshot(),
	}
	if result != nil {
		data["result"] = result
	}
	h.BroadcastToTable(t.ID, Message{
		Type:    "tableUpdate",
		TableID: t.ID,
		Data:    data,
	})
}

// WebSocketHandler handles WebSocket connections
func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	tableID := r.URL.Query().Get("tableId")

	client := &Client{
		conn:    conn,
		send:    make(chan []byte, 256),
		tableID: tableID,
		hub:     h,
	}
	h.register <- client

	welcomeMsg := Message{
		Type: "welcome",
		Data: map[string]string{
			"message": "Connected to blackjack table server",
			"tableId": tableID,
		},
	}
	welcomeData, _ := json.Marshal(welcomeMsg)
	client.send <- welcomeData

	go client.readPump()
	go client.writePump()
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512 * 1024) // 512KB max message size
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error("websocket read error", "error", err)
			}
			break
		}

		// Clients only listen; actions go through the REST endpoints. Parse
		// so malformed frames are at least logged.
		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.logger.Warn("ignoring malformed websocket message", "error", err)
			continue
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
