package panel

import (
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rickgao/led-remote/internal/connection"
	"github.com/rickgao/led-remote/internal/indicator"
	"github.com/rickgao/led-remote/internal/protocol"
)

//go:embed web/index.html
var webFS embed.FS

// Bridge is the part of the connection bridge the panel drives.
type Bridge interface {
	SendCommand(label protocol.Label) error
	State() string
}

// Server is the panel HTTP surface.
type Server struct {
	board  *indicator.Board
	bridge Bridge
	logger *slog.Logger
	engine *gin.Engine
}

// NewServer creates the panel routes.
func NewServer(board *indicator.Board, bridge Bridge, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		board:  board,
		bridge: bridge,
		logger: logger,
		engine: engine,
	}

	engine.GET("/", s.handleIndex)
	engine.GET("/health", s.handleHealth)

	api := engine.Group("/api")
	api.POST("/command/:label", s.handleCommand)
	api.GET("/indicators", s.handleIndicators)
	api.GET("/events", s.handleEvents)

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.board.Snapshot())
}

func (s *Server) handleCommand(c *gin.Context) {
	label, err := protocol.ParseLabel(c.Param("label"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A dropped command is not an error for the page; the bridge logs it.
	sent := s.bridge.SendCommand(label) == nil

	c.JSON(http.StatusAccepted, gin.H{
		"action": label,
		"sent":   sent,
	})
}

func (s *Server) handleIndicators(c *gin.Context) {
	c.JSON(http.StatusOK, s.board.Snapshot())
}

func (s *Server) handleEvents(c *gin.Context) {
	updates, cancel := s.board.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("indicators", s.board.Snapshot())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case snap, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("indicators", snap)
			return true
		}
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	state := s.bridge.State()

	status := "healthy"
	if state != connection.StateOpen {
		status = "degraded"
	}

	display := gin.H{"active": nil}
	if l, ok := s.board.Active(); ok {
		display["active"] = l
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"components": gin.H{
			"bridge":  gin.H{"state": state},
			"display": display,
		},
	})
}

// requestLogger logs each request through slog instead of gin's default writer.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
