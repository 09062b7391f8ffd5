package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Server-pushed message types
const (
	MsgCompletionUpdate MessageType = "completion_update"
	MsgAutosaveOK       MessageType = "autosave_ok"
	MsgAutosaveWarning  MessageType = "autosave_warning"
	MsgStatusChanged    MessageType = "status_changed"
	MsgError            MessageType = "error"
)

// Client-sent message types
const (
	MsgApplyAnswers MessageType = "apply_answers"
	MsgGroupSelect  MessageType = "group_select"
	MsgSave         MessageType = "save"
	MsgSubmit       MessageType = "submit"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for editing sessions
type Hub struct {
	// Assessment -> connections
	sessionConns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	log zerolog.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	AssessmentID string
	UserID       string
	Send         chan []byte
	Hub          *Hub
}

// BroadcastMessage is a message to broadcast to a session
type BroadcastMessage struct {
	AssessmentID string
	Message      *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log zerolog.Logger) *Hub {
	h := &Hub{
		sessionConns: make(map[string]map[*Connection]bool),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
		log:          log.With().Str("component", "ws").Logger(),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.sessionConns[conn.AssessmentID] == nil {
				h.sessionConns[conn.AssessmentID] = make(map[*Connection]bool)
			}
			h.sessionConns[conn.AssessmentID][conn] = true
			h.mu.Unlock()
			h.log.Debug().Str("assessmentId", conn.AssessmentID).Str("userId", conn.UserID).Msg("connection registered")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.sessionConns[conn.AssessmentID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.sessionConns, conn.AssessmentID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug().Str("assessmentId", conn.AssessmentID).Str("userId", conn.UserID).Msg("connection unregistered")

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Error().Err(err).Msg("failed to marshal broadcast message")
				continue
			}
			h.mu.RLock()
			for conn := range h.sessionConns[msg.AssessmentID] {
				select {
				case conn.Send <- data:
				default:
					// Slow consumer: drop the message rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// ConnectionCount returns the number of open connections for a session
func (h *Hub) ConnectionCount(assessmentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionConns[assessmentID])
}

// BroadcastToSession implements service.Broadcaster
func (h *Hub) BroadcastToSession(assessmentID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("assessmentId", assessmentID).Msg("failed to marshal payload")
		return
	}
	h.broadcast <- &BroadcastMessage{
		AssessmentID: assessmentID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectSession closes every connection for an assessment
func (h *Hub) DisconnectSession(assessmentID string) {
	h.mu.Lock()
	conns := h.sessionConns[assessmentID]
	delete(h.sessionConns, assessmentID)
	for conn := range conns {
		close(conn.Send)
	}
	h.mu.Unlock()
}
