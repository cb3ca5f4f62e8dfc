package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/loop/server"
)

// Message types
const (
	MsgTilt    = "tilt"
	MsgRestart = "restart"
	MsgResize  = "resize"
	MsgScene   = "scene"
	MsgEvent   = "event"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ResizeData is the payload of a resize message.
type ResizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type session struct {
	conn   *websocket.Conn
	srv    *server.Server
	logger *log.Logger
}

// serveWS upgrades the connection and plays a match until the browser leaves.
func (h *Handler) serveWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err, "remote", c.ClientIP())
		return
	}
	defer conn.Close()

	logger := h.logger.With("remote", c.ClientIP())
	g, err := game.New(h.game, h.newRand())
	if err != nil {
		logger.Error("create game", "err", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewServer(g, logger)
	go srv.Run(ctx)
	h.hub.Register(srv)
	defer h.hub.Unregister(srv)

	logger.Info("session started", "sessions", h.hub.Len())
	defer logger.Info("session ended")

	s := &session{conn: conn, srv: srv, logger: logger}
	go s.writePump(ctx, cancel)
	s.readPump(ctx)
}

// writePump is the only writer on the connection: snapshots at a fixed rate,
// server events as they happen and keepalive pings.
func (s *session) writePump(ctx context.Context, cancel context.CancelFunc) {
	snapshots := time.NewTicker(config.WebSnapshotTime)
	ping := time.NewTicker(config.WebPingInterval)
	defer func() {
		snapshots.Stop()
		ping.Stop()
		cancel()
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-snapshots.C:
			if err := s.send(MsgScene, s.srv.Snapshot()); err != nil {
				s.logger.Debug("websocket write failed", "err", err)
				return
			}

		case ev := <-s.srv.Events():
			if err := s.send(MsgEvent, ev); err != nil {
				s.logger.Debug("websocket write failed", "err", err)
				return
			}
			if ev.Type == server.EventServerShutdown {
				s.conn.SetWriteDeadline(time.Now().Add(config.WebWriteTimeout))
				s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}

		case <-ping.C:
			s.conn.SetWriteDeadline(time.Now().Add(config.WebWriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Debug("websocket ping failed", "err", err)
				return
			}
		}
	}
}

func (s *session) send(msgType string, data any) error {
	payload, err := json.Marshal(outMessage{Type: msgType, Data: data})
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(config.WebWriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// readPump applies browser messages until the connection closes.
func (s *session) readPump(ctx context.Context) {
	readTimeout := 2 * config.WebPingInterval
	s.conn.SetReadLimit(config.WebReadLimit)
	s.conn.SetReadDeadline(time.Now().Add(readTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				s.logger.Warn("websocket read failed", "err", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("malformed message", "err", err)
			continue
		}
		s.handleMessage(msg)
	}
}

func (s *session) handleMessage(msg Message) {
	switch msg.Type {
	case MsgTilt:
		var t input.Tilt
		if err := json.Unmarshal(msg.Data, &t); err != nil {
			s.logger.Debug("malformed tilt", "err", err)
			return
		}
		s.srv.SetTilt(t)

	case MsgRestart:
		s.srv.Restart()

	case MsgResize:
		var size ResizeData
		if err := json.Unmarshal(msg.Data, &size); err != nil {
			s.logger.Debug("malformed resize", "err", err)
			return
		}
		if !validSide(size.Width) || !validSide(size.Height) {
			s.logger.Debug("resize out of range", "width", size.Width, "height", size.Height)
			return
		}
		s.srv.Resize(size.Width, size.Height)

	default:
		s.logger.Debug("unknown message", "type", msg.Type)
	}
}

func validSide(v float64) bool {
	return v > 0 && v <= config.WebMaxFieldSide
}
