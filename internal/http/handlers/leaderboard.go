package handlers

import (
	"errors"
	"net/http"

	"levelup_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top 100 users by XP
func (h *Handler) GetLeaderboard(c *gin.Context) {
	top, err := h.UserRepo.GetTopByXP(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}

// GetMyRank returns the current user's rank by XP
func (h *Handler) GetMyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rank, xp, err := h.UserRepo.GetUserRank(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rank"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rank": rank, "xp": xp})
}
