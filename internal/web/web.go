// Package web serves the phone frontend: a page that reads the accelerometer
// and a websocket that plays one match per connection.
package web

import (
	_ "embed"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/loop/server"
	"github.com/tomz197/futbolito/internal/object"
)

//go:embed index.html
var indexPage []byte

// Options configures the web frontend.
type Options struct {
	Game    game.Config
	NewRand func() object.Rand // Random source per match
	Hub     *server.Hub        // nil creates a private hub
	Logger  *log.Logger        // nil discards
}

// Handler owns the routes and the live sessions.
type Handler struct {
	game     game.Config
	newRand  func() object.Rand
	hub      *server.Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler validates the game configuration up front so a bad setup fails
// at startup instead of on the first connection.
func NewHandler(opts Options) (*Handler, error) {
	if err := opts.Game.Validate(); err != nil {
		return nil, err
	}
	if opts.NewRand == nil {
		return nil, game.ErrInvalidConfig
	}
	hub := opts.Hub
	if hub == nil {
		hub = server.NewHub()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Handler{
		game:    opts.Game,
		newRand: opts.NewRand,
		hub:     hub,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// Routes registers the frontend on a gin router.
func (h *Handler) Routes(r gin.IRouter) {
	r.GET("/", h.index)
	r.GET("/healthz", h.health)
	r.GET("/ws", h.serveWS)
}

// NewRouter builds a router with gin's recovery middleware and request
// logging through the shared logger.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))
	h.Routes(router)
	return router
}

func (h *Handler) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.hub.Len()})
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"remote", c.ClientIP(),
		)
	}
}
