package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/voin/voin-backend/internal/ws"
	"github.com/voin/voin-backend/pkg/logger"
)

// WSHandler upgrades authenticated members to the notification socket
type WSHandler struct {
	hub            *ws.Hub
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler. allowedOrigins is comma separated; empty allows all.
func NewWSHandler(hub *ws.Hub, allowedOrigins string) *WSHandler {
	h := &WSHandler{
		hub:            hub,
		allowedOrigins: parseOrigins(allowedOrigins),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func parseOrigins(origins string) []string {
	var result []string
	for _, p := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" && trimmed != "*" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Connect handles GET /ws
// @Summary 실시간 알림 WebSocket
// @Tags notifications
// @Param access_token query string false "브라우저용 액세스 토큰"
// @Router /ws [get]
func (h *WSHandler) Connect(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 가 이미 에러 응답을 썼다
		logger.GetLogger().Debug().Err(err).Str("member_id", memberID).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, memberID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
