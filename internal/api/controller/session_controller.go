package controller

import (
	"ctchen222/Connect-Four/internal/api/response"
	"ctchen222/Connect-Four/internal/api/service"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionController handles session-related HTTP requests.
type SessionController struct {
	sessionService service.SessionService
}

// NewSessionController creates a new SessionController.
func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// List handles the live session listing endpoint.
func (sc *SessionController) List(c *gin.Context) {
	sessions, err := sc.sessionService.List(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Could not list sessions", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "could not list sessions")
		return
	}

	response.SuccessResponseList(c, sessions)
}

// Get handles the single session endpoint.
func (sc *SessionController) Get(c *gin.Context) {
	id := c.Param("id")
	session, err := sc.sessionService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrSessionNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Could not load session", "room.id", id, "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "could not load session")
		return
	}

	response.SuccessResponse(c, session)
}
