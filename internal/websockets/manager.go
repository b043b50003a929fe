package websockets

import (
	"encoding/json"
	"pillar2/internal/logger"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_SESSION_UPDATE = "session_update"
	MESSAGE_TYPE_SESSION_RESET  = "session_reset"

	sendBufferSize = 16
	writeWait      = 10 * time.Second
)

type Message struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Conn is the part of a websocket connection the manager uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type Client struct {
	ID        string
	SessionID string
	send      chan []byte
	conn      Conn
}

// Manager tracks open sockets per session and pushes session changes to them.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]map[string]*Client
	log      logger.Logger
}

func New() *Manager {
	return &Manager{
		sessions: make(map[string]map[string]*Client),
		log:      logger.New("websockets"),
	}
}

// HandleWebSocket serves one upgraded connection until the peer goes away. The session
// middleware stores the session id in the "sessionID" local before the upgrade.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	sessionID, _ := c.Locals("sessionID").(string)
	if sessionID == "" {
		log.Warn("websocket connection without session")
		_ = c.Close()
		return
	}

	m.Serve(c, sessionID)
}

// Serve registers conn for sessionID and blocks until the connection closes.
func (m *Manager) Serve(conn Conn, sessionID string) {
	client := m.Register(conn, sessionID)
	defer m.Unregister(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.writePump(client)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			m.log.Function("Serve").Debug("websocket closed", "clientID", client.ID, "error", err)
			break
		}
	}

	m.Unregister(client)
	<-done
}

func (m *Manager) Register(conn Conn, sessionID string) *Client {
	client := &Client{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
		conn:      conn,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[sessionID] == nil {
		m.sessions[sessionID] = make(map[string]*Client)
	}
	m.sessions[sessionID][client.ID] = client

	m.log.Function("Register").Debug("websocket registered", "clientID", client.ID, "sessionID", sessionID)
	return client
}

// Unregister is safe to call more than once for the same client.
func (m *Manager) Unregister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clients, ok := m.sessions[client.SessionID]
	if !ok {
		return
	}
	if _, ok := clients[client.ID]; !ok {
		return
	}

	delete(clients, client.ID)
	if len(clients) == 0 {
		delete(m.sessions, client.SessionID)
	}
	close(client.send)
	_ = client.conn.Close()
}

func (m *Manager) ClientCount(sessionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions[sessionID])
}

func (m *Manager) SendSessionUpdate(sessionID string, data map[string]any) {
	m.send(Message{
		Type:      MESSAGE_TYPE_SESSION_UPDATE,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

func (m *Manager) SendSessionReset(sessionID string) {
	m.send(Message{
		Type:      MESSAGE_TYPE_SESSION_RESET,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	})
}

func (m *Manager) send(message Message) {
	log := m.log.Function("send")

	payload, err := json.Marshal(message)
	if err != nil {
		log.Er("failed to marshal websocket message", err, "type", message.Type)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.sessions[message.SessionID] {
		select {
		case client.send <- payload:
		default:
			log.Warn("websocket buffer full, dropping message", "clientID", client.ID)
		}
	}
}

func (m *Manager) writePump(client *Client) {
	log := m.log.Function("writePump")

	for payload := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Debug("failed to write websocket message", "clientID", client.ID, "error", err)
			return
		}
	}
}
