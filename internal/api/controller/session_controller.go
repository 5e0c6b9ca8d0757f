package controller

import (
	"ctchen222/tictactoe-ai/internal/api/middleware"
	"ctchen222/tictactoe-ai/internal/api/models"
	"ctchen222/tictactoe-ai/internal/api/response"
	"ctchen222/tictactoe-ai/internal/api/service"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/hub"
	"ctchen222/tictactoe-ai/internal/room"
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

// Create handles POST /api/sessions.
func (sc *SessionController) Create(c *gin.Context) {
	var req models.CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	token, snap, err := sc.sessionService.Create(c.Request.Context(), req.Mode, req.Difficulty)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewResponse(true, http.StatusCreated, models.CreateSessionResponse{
		SessionID: snap.RoomID,
		Token:     token,
		State:     models.NewState(snap),
	}))
}

// Get handles GET /api/sessions/:id.
func (sc *SessionController) Get(c *gin.Context) {
	snap, err := sc.sessionService.Get(c.Request.Context(), middleware.SessionID(c))
	respond(c, snap, err)
}

// Move handles POST /api/sessions/:id/moves.
func (sc *SessionController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := sc.sessionService.Move(c.Request.Context(), middleware.SessionID(c), *req.Index)
	respond(c, snap, err)
}

// SetMode handles PUT /api/sessions/:id/mode.
func (sc *SessionController) SetMode(c *gin.Context) {
	var req models.ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := sc.sessionService.SetMode(c.Request.Context(), middleware.SessionID(c), req.Mode)
	respond(c, snap, err)
}

// SetDifficulty handles PUT /api/sessions/:id/difficulty.
func (sc *SessionController) SetDifficulty(c *gin.Context) {
	var req models.DifficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := sc.sessionService.SetDifficulty(c.Request.Context(), middleware.SessionID(c), req.Difficulty)
	respond(c, snap, err)
}

// Restart handles POST /api/sessions/:id/restart.
func (sc *SessionController) Restart(c *gin.Context) {
	snap, err := sc.sessionService.Restart(c.Request.Context(), middleware.SessionID(c))
	respond(c, snap, err)
}

// Close handles DELETE /api/sessions/:id.
func (sc *SessionController) Close(c *gin.Context) {
	if err := sc.sessionService.Close(c.Request.Context(), middleware.SessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessResponseContent(c, "session closed")
}

func respond(c *gin.Context, snap room.Snapshot, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessResponse(c, models.NewState(snap))
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, hub.ErrSessionNotFound), errors.Is(err, room.ErrClosed):
		response.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrUnknownMode), errors.Is(err, game.ErrUnknownDifficulty):
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "Unexpected error handling request", "path", c.FullPath(), "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal error")
	}
}
