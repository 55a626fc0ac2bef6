package handlers

import (
	"errors"
	"net/http"

	"levelup_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type FocusRequest struct {
	Minutes int `json:"minutes"`
}

// CompleteFocus начисляет XP за завершённую фокус-сессию и обновляет серию
func (h *Handler) CompleteFocus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req FocusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	result, err := h.FocusService.CompleteSession(c.Request.Context(), userID, req.Minutes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDuration) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minutes must be positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete session"})
		return
	}

	c.JSON(http.StatusOK, result)
}
