package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/logger"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// DeleteUser - деструктивный админский люк; в обычном потоке пользователи
// не удаляются
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.UserRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	logger.Warn("admin deleted user", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type BroadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Channel string `json:"channel"` // пусто = все каналы
}

// Broadcast рассылает system_announcement всем открытым соединениям и
// создаёт уведомление каждому пользователю
func (h *Handler) Broadcast(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BroadcastRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
			return
		}

		hub.BroadcastSystem(req.Channel, req.Title, req.Message)
		created := h.ActivityService.NotifyAll(c.Request.Context(),
			domain.NotificationAdmin, req.Title, req.Message)

		c.JSON(http.StatusOK, gin.H{"ok": true, "notified": created})
	}
}

type NotifyRequest struct {
	UserID  int64  `json:"user_id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NotifyUser создаёт уведомление одному пользователю
func (h *Handler) NotifyUser(c *gin.Context) {
	var req NotifyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.UserID == 0 || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and message required"})
		return
	}

	ntype := req.Type
	if ntype == "" {
		ntype = domain.NotificationAdmin
	}

	h.ActivityService.Notify(c.Request.Context(), req.UserID, ntype, req.Title, req.Message)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RotateDailyQuests помечает вчерашние незавершённые daily-квесты истёкшими;
// генерация новых - забота внешнего процесса
func (h *Handler) RotateDailyQuests(c *gin.Context) {
	expired, err := h.QuestRepo.ExpireDaily(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate quests"})
		return
	}

	logger.Info("daily quests rotated", "expired", expired)
	c.JSON(http.StatusOK, gin.H{"ok": true, "expired": expired})
}
