package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/santhosh0728/edutask-exam-gateway/internal/session"
	ws "github.com/santhosh0728/edutask-exam-gateway/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams per-second session snapshots so the view layer can
// render the countdown without polling.
type WSHandler struct {
	mgr      *session.Manager
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(mgr *session.Manager, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		mgr:      mgr,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/sessions/:session_id/stream?token=...
// Emits one snapshot event per second. When the session reaches a terminal
// outcome a final outcome event is sent and the stream closes.
func (h *WSHandler) SessionStream(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	if _, ok := h.mgr.Get(sessionID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	streamLog := h.log.With().Str("session_id", sessionID.String()).Logger()

	// gorilla/websocket allows one concurrent writer; the ping responder
	// and the snapshot ticker share this mutex.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}
	writeErr := func(msg string) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteError(conn, msg)
	}

	// Reader pump: answers pings and detects the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var env ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &env); err != nil {
				return
			}
			if env.Action == ws.ActionPing {
				_ = write(ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			ctrl, ok := h.mgr.Get(sessionID)
			if !ok {
				_ = writeErr("session closed")
				return
			}

			snap := ctrl.Snapshot()
			if err := write(ws.SnapshotEvent{Event: ws.EventSnapshot, Snapshot: snap}); err != nil {
				return
			}

			if snap.Outcome != "" && !snap.Outcome.Retryable() {
				_ = write(ws.OutcomeEvent{
					Event:    ws.EventOutcome,
					Outcome:  snap.Outcome,
					Message:  snap.OutcomeMessage,
					ResultID: snap.ResultID,
				})
				streamLog.Info().Str("outcome", string(snap.Outcome)).Msg("Stream closing on terminal outcome")
				return
			}
		}
	}
}
