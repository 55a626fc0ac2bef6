package handlers

import (
	"context"
	"log"
	"net/http"
	"os"

	"levelup_backend/internal/service"
	"levelup_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const defaultChannel = "global"

func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		// JWT from query
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// соединение открывается только существующему пользователю
		if _, err := h.UserRepo.GetByID(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		channel := c.Query("channel")
		if channel == "" {
			channel = defaultChannel
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		// WebSocket upgrade
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("ws upgrade error:", err)
			return
		}

		// после upgrade соединение живёт дольше запроса
		client := ws.NewClient(userID, channel, conn, hub)
		go client.Run(context.Background())
	}
}
