package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListShop возвращает весь каталог косметики
func (h *Handler) ListShop(c *gin.Context) {
	items, err := h.ShopRepo.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shop"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// BuyItem покупает предмет: условное списание монет и запись владения
// одной транзакцией
func (h *Handler) BuyItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	ctx := c.Request.Context()

	item, err := h.ShopRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load item"})
		return
	}

	newBalance, err := h.ShopRepo.Purchase(ctx, userID, item)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyOwned):
			c.JSON(http.StatusConflict, gin.H{"error": "item already owned"})
		case errors.Is(err, repository.ErrInsufficientCoins):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "not enough coins"})
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purchase"})
		}
		return
	}

	h.ActivityService.Record(ctx, userID, domain.ActionShopPurchase, 0, -item.Price, nil)

	c.JSON(http.StatusOK, gin.H{"item": item, "coins": newBalance})
}

// EquipItem надевает купленный предмет
func (h *Handler) EquipItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	ctx := c.Request.Context()

	item, err := h.ShopRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load item"})
		return
	}

	owned, err := h.ShopRepo.Owns(ctx, userID, itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check ownership"})
		return
	}
	if !owned {
		c.JSON(http.StatusForbidden, gin.H{"error": "item not owned"})
		return
	}

	if err := h.UserRepo.Equip(ctx, userID, item.Kind, item.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to equip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "equipped": item.Name})
}
