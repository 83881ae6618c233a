package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thereayou/geoguess/internal/logger"
	"github.com/thereayou/geoguess/internal/middleware"
	ws "github.com/thereayou/geoguess/internal/websocket"
)

// WebSocketHandler подключает администраторов к live-ленте действий
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler создает новый WebSocket handler; браузеры пускаются только с allowedOrigins
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// originChecker запрос без Origin приходит не из браузера и пропускается
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		set[strings.TrimRight(origin, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// HandleActionFeed обрабатывает WebSocket соединения
func (h *WebSocketHandler) HandleActionFeed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, middleware.Username(c))
	if err := h.hub.Register(client); err != nil {
		logger.Warningf("feed register: %v", err)
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
