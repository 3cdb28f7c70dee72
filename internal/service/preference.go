package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leftovercook/backend/internal/models"
)

// ErrUnknownCategory is returned for a category key the engine does
// not manage.
var ErrUnknownCategory = errors.New("unknown preference category")

// Built-in option lists, identical for every user. A user hides a
// default by adding it to the removed set; defaults themselves are
// never mutated.
var (
	DefaultSeasonings = []string{
		"Salt", "Black Pepper", "Olive Oil", "Vegetable Oil", "Garlic Powder",
		"Onion Powder", "Paprika", "Cumin", "Oregano", "Basil", "Thyme", "Rosemary",
	}
	DefaultEquipment = []string{
		"Oven", "Stovetop", "Microwave", "Air Fryer", "Blender",
		"Food Processor", "Slow Cooker", "Instant Pot", "Grill",
	}
	DefaultCuisines = []string{
		"Asian", "Italian", "Mexican", "Indian", "Mediterranean",
		"American", "French", "Thai", "Japanese", "Middle Eastern",
	}
	DefaultDietary = []string{
		"Vegetarian", "Vegan", "Pescatarian", "Gluten-Free",
		"Dairy-Free", "Nut-Free", "Keto", "Halal",
	}
)

// Category identifies one reconciled option set. PersistSelection is
// false for cuisines and dietary restrictions: their selection lives
// only in the wizard session and resets on every visit, while custom
// and removed entries persist for all categories.
type Category struct {
	Key              string
	Defaults         []string
	PersistSelection bool
}

var categories = []Category{
	{Key: "seasonings", Defaults: DefaultSeasonings, PersistSelection: true},
	{Key: "equipment", Defaults: DefaultEquipment, PersistSelection: true},
	{Key: "cuisines", Defaults: DefaultCuisines, PersistSelection: false},
	{Key: "dietary", Defaults: DefaultDietary, PersistSelection: false},
}

// CategoryByKey resolves a category from its URL key.
func CategoryByKey(key string) (Category, error) {
	for _, c := range categories {
		if c.Key == key {
			return c, nil
		}
	}
	return Category{}, ErrUnknownCategory
}

// CategoryState is what the UI renders for one category: the options
// the user can pick from and the ones currently picked.
type CategoryState struct {
	Available []string `json:"available"`
	Selected  []string `json:"selected"`
}

// PreferenceService reconciles built-in defaults with a user's custom
// additions and removals, and keeps the persisted record in step with
// every mutation. Persistence is a whole-record upsert, last write
// wins; concurrent edits from two sessions are not coordinated.
type PreferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new PreferenceService instance
func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Load computes the available and selected sets for one category. A
// user without a record sees the defaults with nothing selected. The
// persisted selection is truncated to the available set; categories
// without persisted selection always start empty.
func (s *PreferenceService) Load(ctx context.Context, userID uuid.UUID, cat Category) (*CategoryState, error) {
	rec, err := s.record(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.stateFor(rec, cat), nil
}

// Toggle flips membership of name in the selected set. For categories
// with persisted selection the new set is written back immediately;
// for the others the flip applies to the caller-supplied current
// selection and nothing is written.
func (s *PreferenceService) Toggle(ctx context.Context, userID uuid.UUID, cat Category, name string, current []string) (*CategoryState, error) {
	rec, err := s.record(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cat.PersistSelection {
		state := s.stateFor(rec, cat)
		state.Selected = flip(intersect(current, state.Available), name)
		return state, nil
	}

	selected, _, _ := recordSets(rec, cat)
	*selected = flip(*selected, name)
	if err := s.upsert(ctx, rec); err != nil {
		return nil, err
	}
	return s.stateFor(rec, cat), nil
}

// AddCustom appends a user-defined option. Blank names and names
// already available are ignored. The new option is not auto-selected.
func (s *PreferenceService) AddCustom(ctx context.Context, userID uuid.UUID, cat Category, name string) (*CategoryState, error) {
	rec, err := s.record(ctx, userID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	state := s.stateFor(rec, cat)
	if name == "" || contains(state.Available, name) {
		return state, nil
	}

	_, custom, _ := recordSets(rec, cat)
	*custom = append(*custom, name)
	if err := s.upsert(ctx, rec); err != nil {
		return nil, err
	}
	return s.stateFor(rec, cat), nil
}

// Remove hides an option. A default goes into the removed set so a
// later reset can restore it; a custom entry is deleted outright.
// Either way the option is pruned from the selection. Removing a name
// that is not available is a no-op.
func (s *PreferenceService) Remove(ctx context.Context, userID uuid.UUID, cat Category, name string) (*CategoryState, error) {
	rec, err := s.record(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := s.stateFor(rec, cat)
	if !contains(state.Available, name) {
		return state, nil
	}

	selected, custom, removed := recordSets(rec, cat)
	if contains(cat.Defaults, name) {
		if !contains(*removed, name) {
			*removed = append(*removed, name)
		}
	} else {
		*custom = without(*custom, name)
	}
	if cat.PersistSelection {
		*selected = without(*selected, name)
	}

	if err := s.upsert(ctx, rec); err != nil {
		return nil, err
	}
	return s.stateFor(rec, cat), nil
}

// record loads the user's preference row, or a fresh zero record when
// none exists yet.
func (s *PreferenceService) record(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error) {
	var rec models.UserPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserPreference{ID: uuid.New(), UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// upsert writes the whole record back. A loaded record (CreatedAt set)
// is updated in place; a fresh one is inserted with an on-conflict
// update on user_id so two racing first writes collapse into one row.
func (s *PreferenceService) upsert(ctx context.Context, rec *models.UserPreference) error {
	var err error
	if rec.CreatedAt.IsZero() {
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(rec).Error
	} else {
		err = s.db.WithContext(ctx).Save(rec).Error
	}
	if err != nil {
		log.Printf("[PreferenceService] failed to persist preferences for user %s: %v", rec.UserID, err)
	}
	return err
}

func (s *PreferenceService) stateFor(rec *models.UserPreference, cat Category) *CategoryState {
	selected, custom, removed := recordSets(rec, cat)
	available := availableOptions(cat.Defaults, *custom, *removed)

	state := &CategoryState{Available: available, Selected: []string{}}
	if cat.PersistSelection {
		state.Selected = intersect(*selected, available)
	}
	return state
}

// recordSets maps a category onto its three columns. Categories whose
// selection is not persisted still get a scratch selected slice so
// callers can treat all categories uniformly.
func recordSets(rec *models.UserPreference, cat Category) (selected, custom, removed *models.JSONBStringArray) {
	switch cat.Key {
	case "seasonings":
		return &rec.Seasonings, &rec.CustomSeasonings, &rec.RemovedSeasonings
	case "equipment":
		return &rec.Equipment, &rec.CustomEquipment, &rec.RemovedEquipment
	case "cuisines":
		return &rec.Cuisines, &rec.CustomCuisines, &rec.RemovedCuisines
	default:
		scratch := models.JSONBStringArray{}
		return &scratch, &rec.CustomDietary, &rec.RemovedDietary
	}
}

// availableOptions merges the three sets: defaults first (minus the
// removed ones), then customs in insertion order. The removed set
// suppresses defaults only — a custom entry that shadows a removed
// default stays visible. Duplicates are dropped.
func availableOptions(defaults, custom, removed []string) []string {
	removedSet := make(map[string]struct{}, len(removed))
	for _, r := range removed {
		removedSet[r] = struct{}{}
	}

	seen := make(map[string]struct{}, len(defaults)+len(custom))
	out := make([]string, 0, len(defaults)+len(custom))
	for _, d := range defaults {
		if _, hidden := removedSet[d]; hidden {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	for _, c := range custom {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

func without(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}

func flip(list []string, name string) []string {
	if contains(list, name) {
		return without(list, name)
	}
	return append(list, name)
}

func intersect(list, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = struct{}{}
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if _, ok := allowedSet[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
