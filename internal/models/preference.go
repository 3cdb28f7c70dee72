package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONBStringArray stores a string slice as a JSONB column.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// UserPreference is the single persisted preference record per user.
// For each option category it stores the selected set (where selection
// persists at all), the user-added customs, and the hidden defaults.
// The whole row is upserted on every mutation; last write wins.
type UserPreference struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Seasonings JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"seasonings"`
	Equipment  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"equipment"`
	// Cuisine selection is never written back; the column exists for
	// record compatibility only. See PreferenceService.
	Cuisines JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisines"`

	CustomSeasonings JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"custom_seasonings"`
	CustomEquipment  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"custom_equipment"`
	CustomCuisines   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"custom_cuisines"`
	CustomDietary    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"custom_dietary"`

	RemovedSeasonings JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"removed_seasonings"`
	RemovedEquipment  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"removed_equipment"`
	RemovedCuisines   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"removed_cuisines"`
	RemovedDietary    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"removed_dietary"`
}
