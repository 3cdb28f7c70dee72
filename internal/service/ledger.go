package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leftovercook/backend/internal/models"
	"github.com/leftovercook/backend/internal/types"
)

var (
	// ErrInvalidRating is returned for ratings outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrLedgerEntryNotFound is returned when a saved entry does not
	// exist or belongs to another user.
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")
)

// Cooking points: a flat base for finishing the dish, a rating bonus
// scaled by the stars given, and a waste-reduction bonus.
const (
	basePoints       = 50
	ratingMultiplier = 10
	wasteBonus       = 20
	pointsPerLevel   = 500
	minWasteGrams    = 200
	wasteGramsSpread = 500
	leaderboardLimit = 100
)

// LedgerService owns the saved and cooked ledgers plus the
// gamification counters they feed.
type LedgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// SaveRecipe snapshots a recipe into the saved ledger. Saving the same
// recipe twice makes two independent entries.
func (s *LedgerService) SaveRecipe(ctx context.Context, userID uuid.UUID, recipe *types.Recipe) (*models.SavedRecipe, error) {
	saved := &models.SavedRecipe{
		ID:         uuid.New(),
		UserID:     userID,
		RecipeData: models.RecipeSnapshot(*recipe),
		Embedding:  recipeEmbedding(recipe),
	}
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return saved, nil
}

// ListSaved returns the user's saved ledger, newest first.
func (s *LedgerService) ListSaved(ctx context.Context, userID uuid.UUID) ([]*models.SavedRecipe, error) {
	var saved []*models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return saved, nil
}

// DeleteSaved soft-deletes one saved entry. Only the owner can delete
// it; a foreign or missing id reports not found either way.
func (s *LedgerService) DeleteSaved(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedRecipe{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLedgerEntryNotFound
	}
	return nil
}

// SearchSaved finds saved recipes matching the query. On Postgres the
// query is embedded and matched by vector distance; elsewhere it falls
// back to a title/description substring match.
func (s *LedgerService) SearchSaved(ctx context.Context, userID uuid.UUID, query string) ([]*models.SavedRecipe, error) {
	var saved []*models.SavedRecipe

	if s.db.Dialector.Name() == "postgres" {
		probe := recipeEmbedding(&types.Recipe{Title: query})
		err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{probe}},
			}).
			Limit(20).
			Find(&saved).Error
		if err != nil {
			return nil, fmt.Errorf("failed to search saved recipes: %w", err)
		}
		return saved, nil
	}

	pattern := "%" + query + "%"
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("recipe_data LIKE ?", pattern).
		Order("created_at DESC").
		Limit(20).
		Find(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search saved recipes: %w", err)
	}
	return saved, nil
}

// CookRecipe appends a cooked-ledger entry and credits the points to
// the user's profile in the same transaction. The waste figure is an
// estimate rolled server-side per cook.
func (s *LedgerService) CookRecipe(ctx context.Context, userID uuid.UUID, recipe *types.Recipe, rating int) (*models.CookedRecipe, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	cooked := &models.CookedRecipe{
		ID:             uuid.New(),
		UserID:         userID,
		RecipeData:     models.RecipeSnapshot(*recipe),
		Rating:         rating,
		PointsEarned:   basePoints + rating*ratingMultiplier + wasteBonus,
		FoodWasteSaved: float64(minWasteGrams + rand.Intn(wasteGramsSpread+1)),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cooked).Error; err != nil {
			return err
		}

		var profile models.UserProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return err
		}
		profile.TotalPoints += cooked.PointsEarned
		profile.Level = profile.TotalPoints/pointsPerLevel + 1
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record cooked recipe: %w", err)
	}
	return cooked, nil
}

// ListCooked returns the user's cooked ledger, newest first.
func (s *LedgerService) ListCooked(ctx context.Context, userID uuid.UUID) ([]*models.CookedRecipe, error) {
	var cooked []*models.CookedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cooked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cooked recipes: %w", err)
	}
	return cooked, nil
}

// Leaderboard returns the top profiles by total points.
func (s *LedgerService) Leaderboard(ctx context.Context, limit int) ([]types.LeaderboardEntry, error) {
	if limit <= 0 || limit > leaderboardLimit {
		limit = leaderboardLimit
	}

	var profiles []models.UserProfile
	err := s.db.WithContext(ctx).
		Order("total_points DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]types.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, types.LeaderboardEntry{
			Username:    p.Username,
			TotalPoints: p.TotalPoints,
			Level:       p.Level,
		})
	}
	return entries, nil
}
