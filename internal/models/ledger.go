package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/leftovercook/backend/internal/types"
)

// RecipeSnapshot stores a full recipe as a JSONB column. Ledger rows
// snapshot the recipe at save/cook time; they never reference the
// session store.
type RecipeSnapshot types.Recipe

// Value implements the driver.Valuer interface. The snapshot is
// stored as text so substring search works on every dialect.
func (r RecipeSnapshot) Value() (driver.Value, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (r *RecipeSnapshot) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		*r = RecipeSnapshot{}
		return nil
	default:
		return fmt.Errorf("unsupported type for RecipeSnapshot: %T", value)
	}
	return json.Unmarshal(bytes, r)
}

// SavedRecipe is an append-only bookmark of a generated recipe.
type SavedRecipe struct {
	ID         uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeData RecipeSnapshot  `gorm:"type:jsonb;not null" json:"recipe_data"`
	Embedding  pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// CookedRecipe is an append-only record of a completed cook, with the
// rating and the points it earned.
type CookedRecipe struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeData     RecipeSnapshot `gorm:"type:jsonb;not null" json:"recipe_data"`
	Rating         int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	PointsEarned   int            `gorm:"not null" json:"points_earned"`
	FoodWasteSaved float64        `gorm:"not null;default:0" json:"food_waste_saved"`
	CreatedAt      time.Time      `json:"created_at"`
}
