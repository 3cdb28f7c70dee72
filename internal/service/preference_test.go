package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seasoningsCategory(t *testing.T) Category {
	t.Helper()
	cat, err := CategoryByKey("seasonings")
	require.NoError(t, err)
	return cat
}

func TestCategoryByKey(t *testing.T) {
	for _, key := range []string{"seasonings", "equipment", "cuisines", "dietary"} {
		cat, err := CategoryByKey(key)
		require.NoError(t, err)
		assert.Equal(t, key, cat.Key)
	}

	_, err := CategoryByKey("gadgets")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLoadDefaultsForNewUser(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()

	state, err := svc.Load(ctx, uuid.New(), seasoningsCategory(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultSeasonings, state.Available)
	assert.Empty(t, state.Selected)
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	state, err := svc.Toggle(ctx, userID, cat, "Cumin", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cumin"}, state.Selected)

	state, err = svc.Toggle(ctx, userID, cat, "Cumin", nil)
	require.NoError(t, err)
	assert.Empty(t, state.Selected)
}

func TestTogglePersistsAcrossLoads(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	_, err := svc.Toggle(ctx, userID, cat, "Salt", nil)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, userID, cat, "Paprika", nil)
	require.NoError(t, err)

	state, err := svc.Load(ctx, userID, cat)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Salt", "Paprika"}, state.Selected)
}

func TestAddCustomAppearsAfterDefaults(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	state, err := svc.AddCustom(ctx, userID, cat, "Za'atar")
	require.NoError(t, err)

	require.Len(t, state.Available, len(DefaultSeasonings)+1)
	assert.Equal(t, "Za'atar", state.Available[len(state.Available)-1])
	assert.NotContains(t, state.Selected, "Za'atar", "custom options must not auto-select")
}

func TestAddCustomIgnoresBlankAndDuplicates(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	state, err := svc.AddCustom(ctx, userID, cat, "   ")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeasonings, state.Available)

	state, err = svc.AddCustom(ctx, userID, cat, "Salt")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeasonings, state.Available)
}

func TestRemoveDefaultThenReAddAsCustom(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	state, err := svc.Remove(ctx, userID, cat, "Salt")
	require.NoError(t, err)
	assert.NotContains(t, state.Available, "Salt")

	// Re-adding a removed default as a custom entry brings it back;
	// the removed marker only suppresses the built-in copy.
	state, err = svc.AddCustom(ctx, userID, cat, "Salt")
	require.NoError(t, err)
	assert.Contains(t, state.Available, "Salt")
	assert.Equal(t, "Salt", state.Available[len(state.Available)-1])
}

func TestRemoveCustomDeletesOutright(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	_, err := svc.AddCustom(ctx, userID, cat, "Sumac")
	require.NoError(t, err)

	state, err := svc.Remove(ctx, userID, cat, "Sumac")
	require.NoError(t, err)
	assert.NotContains(t, state.Available, "Sumac")

	// Unlike a removed default, a deleted custom leaves no marker.
	state, err = svc.AddCustom(ctx, userID, cat, "Sumac")
	require.NoError(t, err)
	assert.Contains(t, state.Available, "Sumac")
}

func TestRemovePrunesSelection(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	_, err := svc.Toggle(ctx, userID, cat, "Oregano", nil)
	require.NoError(t, err)

	state, err := svc.Remove(ctx, userID, cat, "Oregano")
	require.NoError(t, err)
	assert.NotContains(t, state.Selected, "Oregano")

	state, err = svc.Load(ctx, userID, cat)
	require.NoError(t, err)
	assert.Empty(t, state.Selected)
}

func TestRemoveUnknownNameIsNoOp(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat := seasoningsCategory(t)

	state, err := svc.Remove(ctx, userID, cat, "Unobtainium")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeasonings, state.Available)
}

func TestCuisineSelectionNeverPersists(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat, err := CategoryByKey("cuisines")
	require.NoError(t, err)

	state, err := svc.Toggle(ctx, userID, cat, "Thai", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai"}, state.Selected)

	// A fresh load starts with an empty selection again.
	state, err = svc.Load(ctx, userID, cat)
	require.NoError(t, err)
	assert.Empty(t, state.Selected)
}

func TestCuisineCustomAndRemovedPersist(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat, err := CategoryByKey("cuisines")
	require.NoError(t, err)

	_, err = svc.AddCustom(ctx, userID, cat, "Ethiopian")
	require.NoError(t, err)
	_, err = svc.Remove(ctx, userID, cat, "French")
	require.NoError(t, err)

	state, err := svc.Load(ctx, userID, cat)
	require.NoError(t, err)
	assert.Contains(t, state.Available, "Ethiopian")
	assert.NotContains(t, state.Available, "French")
}

func TestToggleNonPersistedUsesCallerSelection(t *testing.T) {
	svc := NewPreferenceService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	cat, err := CategoryByKey("cuisines")
	require.NoError(t, err)

	state, err := svc.Toggle(ctx, userID, cat, "Indian", []string{"Thai", "Indian"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai"}, state.Selected)
}

func TestAvailableOptionsOrdering(t *testing.T) {
	got := availableOptions(
		[]string{"A", "B", "C"},
		[]string{"X", "B", "Y"},
		[]string{"B"},
	)
	// Defaults first minus removed, then customs in insertion order.
	// The custom "B" shadows the removed default and stays visible.
	assert.Equal(t, []string{"A", "C", "X", "B", "Y"}, got)
}
