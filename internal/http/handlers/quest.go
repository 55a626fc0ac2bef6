package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/progression"
	"levelup_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMyQuests возвращает активные квесты пользователя
func (h *Handler) GetMyQuests(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	quests, err := h.QuestRepo.GetUserQuests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get quests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

type CreateQuestRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	QuestType   string         `json:"quest_type"`
	Difficulty  string         `json:"difficulty"`
	RewardXP    int64          `json:"reward_xp"`
	RewardStats map[string]int `json:"reward_stats"`
}

// CreateQuest создаёт квест для текущего пользователя. Монетная награда
// всегда берётся из таблицы по сложности, клиенту она не доверяется.
func (h *Handler) CreateQuest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateQuestRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}
	if req.RewardXP < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reward_xp must not be negative"})
		return
	}

	questType := domain.QuestType(req.QuestType)
	switch questType {
	case domain.QuestTypeDaily, domain.QuestTypeWeekly, domain.QuestTypeAI,
		domain.QuestTypeCampaign, domain.QuestTypeBoss:
	case "":
		questType = domain.QuestTypeDaily
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown quest_type"})
		return
	}

	difficulty := domain.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = domain.DifficultyNormal
	}

	quest := &domain.Quest{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		QuestType:   questType,
		Difficulty:  difficulty,
		RewardXP:    req.RewardXP,
		RewardCoins: progression.CoinRewardForDifficulty(difficulty),
		RewardStats: req.RewardStats,
	}

	// daily-квесты живут до конца суток
	if questType == domain.QuestTypeDaily {
		now := time.Now()
		endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		quest.ExpiresAt = &endOfDay
	}

	if err := h.QuestRepo.Create(c.Request.Context(), quest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create quest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quest": quest})
}

// CompleteQuest выдаёт награду за квест ровно один раз
func (h *Handler) CompleteQuest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}

	result, err := h.QuestService.Complete(c.Request.Context(), questID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			questCompletions.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, service.ErrForbidden):
			questCompletions.WithLabelValues("forbidden").Inc()
			c.JSON(http.StatusForbidden, gin.H{"error": "quest belongs to another user"})
		case errors.Is(err, service.ErrAlreadyCompleted):
			questCompletions.WithLabelValues("already_completed").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "quest already completed"})
		default:
			questCompletions.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete quest"})
		}
		return
	}

	questCompletions.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, result)
}
