package server

import (
	"ctchen222/tictactoe-ai/internal/api/controller"
	"ctchen222/tictactoe-ai/internal/api/middleware"
	"ctchen222/tictactoe-ai/internal/api/service"
	"ctchen222/tictactoe-ai/internal/hub"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
)

const (
	heartbeatInterval = 10 * time.Second
	subscriberBuffer  = 32
)

var tracer = otel.Tracer("server")

type Server struct {
	hub               *hub.Hub
	tokens            service.TokenService
	sessionController *controller.SessionController
	upgrader          websocket.Upgrader
	heartbeat         time.Duration
	engine            *gin.Engine
}

func NewServer(h *hub.Hub, tokens service.TokenService, sessionController *controller.SessionController) *Server {
	s := &Server{
		hub:               h,
		tokens:            tokens,
		sessionController: sessionController,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		heartbeat: heartbeatInterval,
	}
	s.engine = s.routes()
	return s
}

// Engine returns the HTTP handler serving the REST API and the websocket.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.hub.Len()})
	})
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	api.POST("/sessions", s.sessionController.Create)

	session := api.Group("/sessions/:id", middleware.RequireSessionToken(s.tokens))
	session.GET("", s.sessionController.Get)
	session.DELETE("", s.sessionController.Close)
	session.POST("/moves", s.sessionController.Move)
	session.PUT("/mode", s.sessionController.SetMode)
	session.PUT("/difficulty", s.sessionController.SetDifficulty)
	session.POST("/restart", s.sessionController.Restart)

	return r
}
