package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leftovercook/backend/internal/service"
	"github.com/leftovercook/backend/internal/types"
)

// PreferenceHandler handles preference category requests
type PreferenceHandler struct {
	prefService service.IPreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler instance
func NewPreferenceHandler(prefService service.IPreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

// RegisterRoutes registers the preference routes
func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences")
	{
		prefs.GET("/:category", h.GetCategory)
		prefs.POST("/:category/toggle", h.Toggle)
		prefs.POST("/:category/custom", h.AddCustom)
		prefs.DELETE("/:category/:name", h.Remove)
	}
}

func (h *PreferenceHandler) category(c *gin.Context) (service.Category, bool) {
	cat, err := service.CategoryByKey(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return service.Category{}, false
	}
	return cat, true
}

// GetCategory returns the available and selected sets for a category
func (h *PreferenceHandler) GetCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cat, ok := h.category(c)
	if !ok {
		return
	}

	state, err := h.prefService.Load(c.Request.Context(), userID, cat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preferences"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Toggle flips one option in the category selection
func (h *PreferenceHandler) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cat, ok := h.category(c)
	if !ok {
		return
	}

	var req types.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.prefService.Toggle(c.Request.Context(), userID, cat, req.Name, req.Current)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preferences"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// AddCustom appends a user-defined option to the category
func (h *PreferenceHandler) AddCustom(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cat, ok := h.category(c)
	if !ok {
		return
	}

	var req types.AddCustomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.prefService.AddCustom(c.Request.Context(), userID, cat, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preferences"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Remove hides a default option or deletes a custom one
func (h *PreferenceHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cat, ok := h.category(c)
	if !ok {
		return
	}

	state, err := h.prefService.Remove(c.Request.Context(), userID, cat, c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preferences"})
		return
	}
	c.JSON(http.StatusOK, state)
}
