package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leftovercook/backend/internal/models"
	"github.com/leftovercook/backend/internal/service"
	"github.com/leftovercook/backend/internal/types"
)

// LedgerHandler handles the saved and cooked recipe ledgers plus the
// leaderboard.
type LedgerHandler struct {
	ledger service.ILedgerService
}

// NewLedgerHandler creates a new LedgerHandler instance
func NewLedgerHandler(ledger service.ILedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// RegisterRoutes registers the ledger routes
func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	ledger := router.Group("/ledger")
	{
		ledger.POST("/saved", h.Save)
		ledger.GET("/saved", h.ListSaved)
		ledger.GET("/saved/search", h.SearchSaved)
		ledger.DELETE("/saved/:id", h.DeleteSaved)
		ledger.POST("/cooked", h.Cook)
		ledger.GET("/cooked", h.ListCooked)
	}
}

// RegisterLeaderboardRoute registers the public leaderboard route
func (h *LedgerHandler) RegisterLeaderboardRoute(router *gin.RouterGroup) {
	router.GET("/leaderboard", h.Leaderboard)
}

// Save stores a recipe snapshot in the saved ledger
func (h *LedgerHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.ledger.SaveRecipe(c.Request.Context(), userID, &req.Recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}
	c.JSON(http.StatusCreated, savedResponse(saved))
}

// ListSaved returns the user's saved ledger
func (h *LedgerHandler) ListSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	saved, err := h.ledger.ListSaved(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list saved recipes"})
		return
	}

	out := make([]types.SavedRecipeResponse, 0, len(saved))
	for _, s := range saved {
		out = append(out, savedResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"recipes": out})
}

// SearchSaved searches the user's saved ledger
func (h *LedgerHandler) SearchSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	saved, err := h.ledger.SearchSaved(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search saved recipes"})
		return
	}

	out := make([]types.SavedRecipeResponse, 0, len(saved))
	for _, s := range saved {
		out = append(out, savedResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"recipes": out})
}

// DeleteSaved removes one saved entry
func (h *LedgerHandler) DeleteSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.ledger.DeleteSaved(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrLedgerEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete saved recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Cook records a completed cook and returns the entry with the points
// earned
func (h *LedgerHandler) Cook(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CookRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cooked, err := h.ledger.CookRecipe(c.Request.Context(), userID, &req.Recipe, req.Rating)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record cooked recipe"})
		return
	}
	c.JSON(http.StatusCreated, cookedResponse(cooked))
}

// ListCooked returns the user's cooked ledger
func (h *LedgerHandler) ListCooked(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cooked, err := h.ledger.ListCooked(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cooked recipes"})
		return
	}

	out := make([]types.CookedRecipeResponse, 0, len(cooked))
	for _, entry := range cooked {
		out = append(out, cookedResponse(entry))
	}
	c.JSON(http.StatusOK, gin.H{"recipes": out})
}

// Leaderboard returns the top users by total points
func (h *LedgerHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.ledger.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func savedResponse(s *models.SavedRecipe) types.SavedRecipeResponse {
	return types.SavedRecipeResponse{
		ID:        s.ID,
		Recipe:    types.Recipe(s.RecipeData),
		CreatedAt: s.CreatedAt,
	}
}

func cookedResponse(entry *models.CookedRecipe) types.CookedRecipeResponse {
	return types.CookedRecipeResponse{
		ID:             entry.ID,
		Recipe:         types.Recipe(entry.RecipeData),
		Rating:         entry.Rating,
		PointsEarned:   entry.PointsEarned,
		FoodWasteSaved: entry.FoodWasteSaved,
		CreatedAt:      entry.CreatedAt,
	}
}
