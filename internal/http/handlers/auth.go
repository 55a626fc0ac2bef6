package handlers

import (
	"errors"
	"net/http"
	"strings"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	GoalCategory string `json:"goal_category"`
	GoalSpecific string `json:"goal_specific"`
}

// Register создаёт пользователя и выдаёт токен. Полноценная проверка личности
// живёт во внешнем слое; здесь только онбординг профиля.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	user := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Goal: domain.Goal{
			Category: req.GoalCategory,
			Specific: req.GoalSpecific,
		},
	}
	// уникальность имени решает constraint, а не предварительный SELECT:
	// два конкурентных register не должны превращаться в 500
	if err := h.UserRepo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type LoginRequest struct {
	Username string `json:"username"`
}

// Login выдаёт токен существующему пользователю по имени
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.UserRepo.GetByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
