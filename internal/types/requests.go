package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the request body for profile updates.
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,max=50"`
}

// GenerateRecipesRequest is the request body for recipe generation and
// load-more. Ingredients must contain at least one entry; amounts are
// discarded before the gateway call.
type GenerateRecipesRequest struct {
	Ingredients      []Ingredient `json:"ingredients" binding:"required,min=1"`
	Equipment        []string     `json:"equipment"`
	CommonSeasonings []string     `json:"commonSeasonings"`
	Preferences      Preferences  `json:"preferences"`
}

// ToggleRequest flips one option in a preference category selection.
// Current is the client-held selection for categories whose selection
// is not persisted; it is ignored for the others.
type ToggleRequest struct {
	Name    string   `json:"name" binding:"required"`
	Current []string `json:"current"`
}

// AddCustomRequest appends one user-defined option to a category.
type AddCustomRequest struct {
	Name string `json:"name" binding:"required"`
}

// ChatRequest is the request body for recipe Q&A. History holds the
// full conversation so far, oldest first.
type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	History []ChatMessage `json:"history"`
}

// SaveRecipeRequest stores a recipe snapshot in the saved ledger.
type SaveRecipeRequest struct {
	Recipe Recipe `json:"recipe" binding:"required"`
}

// CookRecipeRequest records a completed cook with its star rating.
type CookRecipeRequest struct {
	Recipe Recipe `json:"recipe" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	Username    string `json:"username"`
	TotalPoints int    `json:"total_points"`
	Level       int    `json:"level"`
}

// CookedRecipeResponse is a cooked-ledger entry on the wire.
type CookedRecipeResponse struct {
	ID             uuid.UUID `json:"id"`
	Recipe         Recipe    `json:"recipe"`
	Rating         int       `json:"rating"`
	PointsEarned   int       `json:"points_earned"`
	FoodWasteSaved float64   `json:"food_waste_saved"`
	CreatedAt      time.Time `json:"created_at"`
}

// SavedRecipeResponse is a saved-ledger entry on the wire.
type SavedRecipeResponse struct {
	ID        uuid.UUID `json:"id"`
	Recipe    Recipe    `json:"recipe"`
	CreatedAt time.Time `json:"created_at"`
}
