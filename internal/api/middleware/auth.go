package middleware

import (
	"ctchen222/tictactoe-ai/internal/api/response"
	"ctchen222/tictactoe-ai/internal/api/service"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const sessionIDKey = "session_id"

// RequireSessionToken only lets a request through when its bearer token was
// issued for the session named by the :id route parameter.
func RequireSessionToken(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			abort(c, "missing bearer token")
			return
		}

		sessionID, err := tokens.Verify(raw)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "Rejected session token", "error", err)
			abort(c, "invalid session token")
			return
		}
		if sessionID != c.Param("id") {
			abort(c, "token does not grant access to this session")
			return
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id authorized by RequireSessionToken.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

func abort(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.NewError(false, http.StatusUnauthorized, message))
}
