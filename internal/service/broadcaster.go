package service

import "careassess/internal/model"

// Broadcaster pushes session events to connected clients over WebSocket
// (interface avoids an import cycle with the transport layer)
type Broadcaster interface {
	BroadcastToSession(assessmentID string, msgType string, payload interface{})
	DisconnectSession(assessmentID string)
}

// SessionCloser pushes a lifecycle transition into any open editing
// session for the record.
type SessionCloser interface {
	Invalidate(assessmentID string, status model.AssessmentStatus)
}
