package handlers

import (
	"net/http"
	"time"

	"qa-warehouse-api-server/internal/api/middleware"
	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Maximum time to wait for a message, including pings, from the client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler pushes notification toasts to signed-in dashboards.
type WebSocketHandler struct {
	Hub      *socket.Hub
	Issuer   *auth.Issuer
	Sessions middleware.SessionValidator
	Log      *zap.Logger
}

// ServeWs upgrades the request. Browsers cannot set headers on a websocket
// handshake, so the token comes in the query string.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}
	claims, err := h.Issuer.Parse(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	if h.Sessions != nil {
		if err := h.Sessions.ActiveSession(c.Request.Context(), claims.UserID, claims.SessionID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has been revoked"})
			return
		}
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.Hub.Register(userID, conn)
	defer func() {
		h.Hub.Unregister(userID, conn)
		conn.Close()
	}()

	// gorilla answers pings with pongs; each ping extends the deadline.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warn("websocket closed unexpectedly", zap.String("user_id", userID), zap.Error(err))
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}
