package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/octofit/dashboard/internal/view"
)

const liveWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveMessage is one state update pushed over the live socket
type LiveMessage struct {
	Type  string         `json:"type"`
	State *view.Snapshot `json:"state,omitempty"`
	HTML  string         `json:"html,omitempty"`
	Error string         `json:"error,omitempty"`
}

// handleLiveView mounts a view for the lifetime of the socket and streams
// every state transition. Closing the socket unmounts the view.
func (s *Server) handleLiveView(w http.ResponseWriter, r *http.Request) {
	p := PresenterFromContext(r.Context())
	kind := p.Describe().Kind

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	// Clear the deadline inherited from the HTTP server's read timeout
	conn.SetReadDeadline(time.Time{})

	slog.Info("live view connected", "resource", kind, "request_id", middleware.GetReqID(r.Context()))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// A view makes at most two transitions, so the buffer never fills
	updates := make(chan view.Page, 2)
	v := s.newView(p, view.WithListener(func(page view.Page) {
		updates <- page
	}))
	defer v.Unmount()

	// Read from WebSocket to notice the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}
		}
	}()

	if err := s.sendPage(conn, v.Page()); err != nil {
		return
	}

	if err := v.Mount(ctx); err != nil {
		slog.Error("failed to mount live view", "resource", kind, "error", err)
		s.sendLiveError(conn, "failed to start load")
		return
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("live view disconnected before load finished", "resource", kind)
			return
		case page := <-updates:
			if err := s.sendPage(conn, page); err != nil {
				return
			}
			if page.IsLoading() {
				continue
			}
			closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "load finished")
			if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(liveWriteTimeout)); err != nil {
				slog.Debug("failed to send close frame", "error", err)
			}
			slog.Info("live view completed", "resource", kind, "state", page.Phase)
			return
		}
	}
}

func (s *Server) sendPage(conn *websocket.Conn, page view.Page) error {
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		slog.Error("failed to render live fragment", "error", err)
		return err
	}

	snap := page.Snapshot()
	return s.sendLiveMessage(conn, LiveMessage{
		Type:  "state",
		State: &snap,
		HTML:  buf.String(),
	})
}

func (s *Server) sendLiveMessage(conn *websocket.Conn, msg LiveMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal live message", "error", err)
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send live message", "error", err)
		return err
	}
	return nil
}

func (s *Server) sendLiveError(conn *websocket.Conn, message string) {
	s.sendLiveMessage(conn, LiveMessage{
		Type:  "error",
		Error: message,
	})
}
