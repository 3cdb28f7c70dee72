package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leftovercook/backend/internal/service"
	"github.com/leftovercook/backend/internal/types"
)

// RecipeHandler handles the session recipe endpoints: generation,
// load-more, lookup, chat, image generation and start-over.
type RecipeHandler struct {
	session   service.ISessionService
	generator service.RecipeGenerator
	images    service.ImageGenerator
}

// NewRecipeHandler creates a new RecipeHandler instance. The image
// generator may be nil when image generation is not configured.
func NewRecipeHandler(session service.ISessionService, generator service.RecipeGenerator, images service.ImageGenerator) *RecipeHandler {
	return &RecipeHandler{
		session:   session,
		generator: generator,
		images:    images,
	}
}

// RegisterRoutes registers the recipe routes. The rate limiter guards
// the two generation endpoints only.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		if rateLimit != nil {
			recipes.POST("/generate", rateLimit, h.Generate)
			recipes.POST("/load-more", rateLimit, h.LoadMore)
		} else {
			recipes.POST("/generate", h.Generate)
			recipes.POST("/load-more", h.LoadMore)
		}
		recipes.GET("/:id", h.Get)
		recipes.POST("/:id/image", h.GenerateImage)
		recipes.POST("/:id/chat", h.Chat)
		recipes.DELETE("", h.Clear)
	}
}

// criteriaFromRequest validates the request and flattens it into
// generation criteria. Ingredient amounts are display-only and are
// dropped here.
func criteriaFromRequest(c *gin.Context) (*types.GenerationCriteria, bool) {
	var req types.GenerateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if !req.Preferences.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preference ranges must be ordered low to high"})
		return nil, false
	}

	names := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one ingredient is required"})
		return nil, false
	}

	return &types.GenerationCriteria{
		Ingredients:      names,
		Equipment:        req.Equipment,
		CommonSeasonings: req.CommonSeasonings,
		Preferences:      req.Preferences,
	}, true
}

func (h *RecipeHandler) generationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrRateLimited) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "recipe generation failed: " + err.Error()})
}

// Generate replaces the session batch with freshly generated recipes
func (h *RecipeHandler) Generate(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	criteria, ok := criteriaFromRequest(c)
	if !ok {
		return
	}

	recipes, err := h.session.Generate(c.Request.Context(), sid, criteria)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// LoadMore appends a further batch to the session
func (h *RecipeHandler) LoadMore(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	criteria, ok := criteriaFromRequest(c)
	if !ok {
		return
	}

	recipes, err := h.session.LoadMore(c.Request.Context(), sid, criteria)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Get resolves one recipe from the session batch
func (h *RecipeHandler) Get(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	recipe, err := h.session.Resolve(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GenerateImage creates a hosted photo for one session recipe and
// attaches it to the batch. There is no automatic retry; the client
// may call again after a failure.
func (h *RecipeHandler) GenerateImage(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image generation is not configured"})
		return
	}

	recipe, err := h.session.Resolve(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}

	imageURL, err := h.images.GenerateRecipeImage(c.Request.Context(), recipe)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "image generation failed: " + err.Error()})
		return
	}

	if err := h.session.SetImageURL(c.Request.Context(), sid, recipe.ID, imageURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}

// Chat answers a question about one session recipe
func (h *RecipeHandler) Chat(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.session.Resolve(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}

	history := append(req.History, types.ChatMessage{Role: "user", Content: req.Message})
	reply, err := h.generator.Chat(c.Request.Context(), recipe, history)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Clear drops the session batch ("start over")
func (h *RecipeHandler) Clear(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.session.Clear(c.Request.Context(), sid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.Status(http.StatusNoContent)
}
