package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"careassess/internal/model"
	"careassess/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections for editing sessions
type Handler struct {
	hub      *Hub
	authSvc  *service.AuthService
	sessions *service.SessionManager
	log      zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, sessions *service.SessionManager, log zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		authSvc:  authSvc,
		sessions: sessions,
		log:      log.With().Str("component", "ws").Logger(),
	}
}

// groupSelectPayload is the inbound payload for group_select messages
type groupSelectPayload struct {
	GroupID  string `json:"groupId"`
	FieldKey string `json:"fieldKey"`
	Selected bool   `json:"selected"`
}

// SessionWS handles GET /v1/ws/assessments/{assessmentId}. Opening the
// socket opens
// the editing session (arming its autosave timer); closing the last
// socket for the assessment ends the session and cancels the timer.
func (h *Handler) SessionWS(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	session, err := h.sessions.Start(context.Background(), assessmentID, claims.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &Connection{
		AssessmentID: assessmentID,
		UserID:       claims.UserID,
		Send:         make(chan []byte, 256),
		Hub:          h.hub,
	}

	h.hub.Register(conn)
	h.log.Info().Str("assessmentId", assessmentID).Str("userId", claims.UserID).Msg("session socket connected")

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn, session)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection, session *service.Session) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
		// Last socket gone: the editing session is over and the autosave
		// timer must not outlive it
		if h.hub.ConnectionCount(conn.AssessmentID) == 0 {
			h.sessions.End(conn.AssessmentID)
		}
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Msg("websocket read error")
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(conn, "malformed message")
			continue
		}
		h.handleMessage(conn, session, &msg)
	}
}

func (h *Handler) handleMessage(conn *Connection, session *service.Session, msg *Message) {
	ctx := context.Background()

	switch msg.Type {
	case MsgApplyAnswers:
		var patch model.AssessmentAnswers
		if err := json.Unmarshal(msg.Payload, &patch); err != nil {
			h.sendError(conn, "malformed answer patch")
			return
		}
		if _, err := session.Apply(ctx, patch); err != nil {
			h.sendError(conn, err.Error())
		}

	case MsgGroupSelect:
		var payload groupSelectPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(conn, "malformed group selection")
			return
		}
		if _, err := session.ApplyGroupSelection(ctx, payload.GroupID, payload.FieldKey, payload.Selected); err != nil {
			h.sendError(conn, err.Error())
		}

	case MsgSave:
		if _, err := session.Save(ctx); err != nil {
			h.sendError(conn, err.Error())
		}

	case MsgSubmit:
		if _, err := session.Submit(ctx); err != nil {
			h.sendError(conn, err.Error())
		}

	default:
		h.sendError(conn, "unknown message type")
	}
}

func (h *Handler) sendError(conn *Connection, message string) {
	payload, _ := json.Marshal(map[string]string{"message": message})
	data, err := json.Marshal(&Message{Type: MsgError, Payload: payload})
	if err != nil {
		return
	}
	select {
	case conn.Send <- data:
	default:
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case data, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
