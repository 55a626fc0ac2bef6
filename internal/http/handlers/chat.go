package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetChatHistory отдаёт последние сообщения канала поверх REST
// (для первоначальной загрузки без WebSocket)
func (h *Handler) GetChatHistory(c *gin.Context) {
	channel := c.Query("channel")
	if channel == "" {
		channel = defaultChannel
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	messages, err := h.MessageRepo.GetRecent(c.Request.Context(), channel, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "channel": channel})
}
