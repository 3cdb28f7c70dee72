package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/leftovercook/backend/internal/models"
	"github.com/leftovercook/backend/internal/types"
)

// RecipeGenerator is the external generation collaborator: it turns a
// criteria set into a batch of 3-5 recipes and answers free-form
// questions about a recipe. Malformed gateway output is a hard error.
type RecipeGenerator interface {
	GenerateRecipes(ctx context.Context, criteria *types.GenerationCriteria) ([]types.Recipe, error)
	Chat(ctx context.Context, recipe *types.Recipe, history []types.ChatMessage) (string, error)
}

// IPreferenceService is the preference reconciliation engine.
type IPreferenceService interface {
	Load(ctx context.Context, userID uuid.UUID, cat Category) (*CategoryState, error)
	Toggle(ctx context.Context, userID uuid.UUID, cat Category, name string, current []string) (*CategoryState, error)
	AddCustom(ctx context.Context, userID uuid.UUID, cat Category, name string) (*CategoryState, error)
	Remove(ctx context.Context, userID uuid.UUID, cat Category, name string) (*CategoryState, error)
}

// ISessionService is the session-scoped recipe store.
type ISessionService interface {
	Generate(ctx context.Context, sessionID string, criteria *types.GenerationCriteria) ([]types.Recipe, error)
	LoadMore(ctx context.Context, sessionID string, criteria *types.GenerationCriteria) ([]types.Recipe, error)
	Resolve(ctx context.Context, sessionID, recipeID string) (*types.Recipe, error)
	SetImageURL(ctx context.Context, sessionID, recipeID, imageURL string) error
	Clear(ctx context.Context, sessionID string) error
}

// ILedgerService covers the cooked/saved ledgers and gamification.
type ILedgerService interface {
	SaveRecipe(ctx context.Context, userID uuid.UUID, recipe *types.Recipe) (*models.SavedRecipe, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]*models.SavedRecipe, error)
	DeleteSaved(ctx context.Context, userID, id uuid.UUID) error
	SearchSaved(ctx context.Context, userID uuid.UUID, query string) ([]*models.SavedRecipe, error)
	CookRecipe(ctx context.Context, userID uuid.UUID, recipe *types.Recipe, rating int) (*models.CookedRecipe, error)
	ListCooked(ctx context.Context, userID uuid.UUID) ([]*models.CookedRecipe, error)
	Leaderboard(ctx context.Context, limit int) ([]types.LeaderboardEntry, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) (*models.UserProfile, error)
}

// ImageGenerator produces a hosted image URL for a recipe.
type ImageGenerator interface {
	GenerateRecipeImage(ctx context.Context, recipe *types.Recipe) (string, error)
}
