package device

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rickgao/led-remote/internal/protocol"
)

const writeTimeout = 5 * time.Second

// peer is one connected WebSocket client.
type peer struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex
}

func (p *peer) write(data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

// Server is the simulated device: WebSocket control at /ws and a health route.
type Server struct {
	strip    *Strip
	logger   *slog.Logger
	upgrader websocket.Upgrader
	engine   *gin.Engine

	mu    sync.Mutex
	peers map[string]*peer
}

// NewServer creates a device server around strip.
func NewServer(strip *Strip, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		strip:  strip,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		peers: make(map[string]*peer),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/ws", s.handleWS)
	engine.GET("/health", s.handleHealth)
	s.engine = engine

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Toggle applies a command to the strip and broadcasts the resulting status.
func (s *Server) Toggle(label protocol.Label) string {
	status := s.strip.Toggle(label)
	s.logger.Info("strip toggled", "action", label, "status", status)
	s.Broadcast(status)
	return status
}

// Broadcast sends a status frame to every connected client. Clients that
// fail the write are dropped.
func (s *Server) Broadcast(status string) {
	data, err := protocol.EncodeStatus(status)
	if err != nil {
		s.logger.Error("failed to encode status", "error", err)
		return
	}

	s.mu.Lock()
	peers := make([]*peer, 0, len(s.peers))
	for _, p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	for _, p := range peers {
		if err := p.write(data); err != nil {
			s.logger.Warn("dropping client after failed write", "client_id", p.id, "error", err)
			s.remove(p)
			p.conn.Close()
		}
	}
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	peers := s.peers
	s.peers = make(map[string]*peer)
	s.mu.Unlock()

	for _, p := range peers {
		p.writeMu.Lock()
		p.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(time.Second),
		)
		p.writeMu.Unlock()
		p.conn.Close()
	}
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	p := &peer{id: uuid.NewString(), conn: conn}
	logger := s.logger.With("client_id", p.id)

	s.mu.Lock()
	s.peers[p.id] = p
	s.mu.Unlock()

	logger.Info("websocket client connected", "remote", conn.RemoteAddr().String())

	defer func() {
		s.remove(p)
		conn.Close()
		logger.Info("websocket client disconnected")
	}()

	// New clients learn the current state immediately.
	if data, err := protocol.EncodeStatus(s.strip.Status()); err == nil {
		if err := p.write(data); err != nil {
			return
		}
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		cmd, err := protocol.DecodeCommand(data)
		if err != nil {
			logger.Warn("dropping malformed command", "error", err)
			continue
		}
		if !cmd.Action.Valid() {
			logger.Warn("unknown action", "action", cmd.Action)
		}
		s.Toggle(cmd.Action)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"components": gin.H{
			"strip":   gin.H{"status": s.strip.Status()},
			"clients": s.Clients(),
		},
	})
}

func (s *Server) remove(p *peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.peers[p.id] == p {
		delete(s.peers, p.id)
	}
}
