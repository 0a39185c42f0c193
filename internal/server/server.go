package server

import (
	"ctchen222/Connect-Four/internal/api/controller"
	"ctchen222/Connect-Four/internal/api/models"
	"ctchen222/Connect-Four/internal/api/response"
	"ctchen222/Connect-Four/internal/hub"
	"ctchen222/Connect-Four/internal/hub/types"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/internal/validator"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Server is the HTTP side of the session server: WebSocket peers join on
// /ws and live sessions can be inspected under /api.
type Server struct {
	hub      *hub.Hub
	sessions *controller.SessionController
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

func NewServer(h *hub.Hub, sessions *controller.SessionController) *Server {
	binding.Validator = validator.Gin()

	s := &Server{
		hub:      h,
		sessions: sessions,
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
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/ws", s.handleWebSocket)

	api := s.engine.Group("/api")
	api.GET("/sessions", s.sessions.List)
	api.GET("/sessions/:id", s.sessions.Get)
}

// Engine returns the instrumented HTTP handler.
func (s *Server) Engine() http.Handler {
	return otelhttp.NewHandler(s.engine, "http.server")
}

func (s *Server) handleHealth(c *gin.Context) {
	response.SuccessResponse(c, gin.H{
		"status":        "ok",
		"live_sessions": s.hub.Live(),
	})
}

// handleWebSocket's only responsibility is to validate the join request,
// upgrade the connection and pass a registration request to the hub.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	var req models.JoinRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid join request")
		response.ValidationErrorResponse(c, validator.Messages(err))
		return
	}
	req.Normalize()
	span.SetAttributes(attribute.String("game.mode", req.Mode), attribute.String("game.difficulty", req.Difficulty))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	p := player.NewPlayer(uuid.New().String(), c.Request.RemoteAddr, player.NewWebSocketChannel(conn))
	span.SetAttributes(attribute.String("player.id", p.ID))
	slog.InfoContext(ctx, "Peer connected", "player.id", p.ID, "player.addr", p.Addr, "transport", "websocket", "game.mode", req.Mode)

	// Send the registration request to the hub for processing.
	regReq := &types.RegistrationRequest{
		Player:     p,
		Mode:       req.Mode,
		Difficulty: req.Difficulty,
		Ctx:        ctx,
	}
	select {
	case s.hub.Register() <- regReq:
	case <-s.hub.Done():
		_ = p.Conn.Close()
	}
}
