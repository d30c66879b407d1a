package server

import (
	"ctchen222/tictactoe-term/internal/api/controller"
	"ctchen222/tictactoe-term/internal/hub"
	"ctchen222/tictactoe-term/internal/player"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	hub        *hub.Hub
	controller *controller.StateController
	upgrader   websocket.Upgrader
	engine     *gin.Engine
}

func NewServer(h *hub.Hub, sc *controller.StateController) *Server {
	s := &Server{
		hub:        h,
		controller: sc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.RegisterHandlers()
	return s
}

func (s *Server) RegisterHandlers() {
	s.engine.GET("/healthz", s.controller.Health)

	api := s.engine.Group("/api")
	api.GET("/state", s.controller.GetState)

	s.engine.GET("/ws", s.handleWebSocket)
}

// Engine returns the HTTP handler serving every route.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// handleWebSocket upgrades the connection, registers the spectator with the
// hub and then reads until the client goes away. Client messages are ignored.
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	ctx, span := tracer.Start(r.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
		attribute.String("http.method", r.Method),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	spectatorID := c.Query("spectatorId")
	if spectatorID == "" {
		spectatorID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("spectator.id", spectatorID))

	sp := player.NewSpectator(spectatorID, conn)
	select {
	case s.hub.Register() <- sp:
	case <-s.hub.Done():
		conn.Close()
		return
	}

	s.readPump(sp)
}

func (s *Server) readPump(sp *player.Spectator) {
	for {
		if _, _, err := sp.Conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case s.hub.Unregister() <- sp:
	case <-s.hub.Done():
	}
}
