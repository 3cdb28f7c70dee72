package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leftovercook/backend/internal/types"
)

type scriptedGenerator struct {
	batches [][]types.Recipe
	err     error

	lastCriteria *types.GenerationCriteria
}

func (g *scriptedGenerator) GenerateRecipes(ctx context.Context, criteria *types.GenerationCriteria) ([]types.Recipe, error) {
	g.lastCriteria = criteria
	if g.err != nil {
		return nil, g.err
	}
	batch := g.batches[0]
	g.batches = g.batches[1:]
	return batch, nil
}

func (g *scriptedGenerator) Chat(ctx context.Context, recipe *types.Recipe, history []types.ChatMessage) (string, error) {
	return "", nil
}

func TestGenerateAndResolve(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]types.Recipe{{
		{ID: "r1", Title: "Fried Rice"},
		{ID: "r2", Title: "Veggie Soup"},
	}}}
	svc := NewSessionService(gen, nil)
	ctx := context.Background()

	recipes, err := svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	recipe, err := svc.Resolve(ctx, "sess-1", "r2")
	require.NoError(t, err)
	assert.Equal(t, "Veggie Soup", recipe.Title)

	_, err = svc.Resolve(ctx, "sess-1", "missing")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestResolveIsScopedToSession(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]types.Recipe{{{ID: "r1", Title: "Fried Rice"}}}}
	svc := NewSessionService(gen, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "sess-2", "r1")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestGenerateReplacesBatch(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]types.Recipe{
		{{ID: "r1", Title: "Fried Rice"}},
		{{ID: "r2", Title: "Veggie Soup"}},
	}}
	svc := NewSessionService(gen, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"peas"}})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "sess-1", "r1")
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	recipe, err := svc.Resolve(ctx, "sess-1", "r2")
	require.NoError(t, err)
	assert.Equal(t, "Veggie Soup", recipe.Title)
}

func TestLoadMoreAppendsAndHintsTitles(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]types.Recipe{
		{{ID: "r1", Title: "Fried Rice"}},
		{{ID: "r2", Title: "Veggie Soup"}},
	}}
	svc := NewSessionService(gen, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)

	more, err := svc.LoadMore(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)
	require.Len(t, more, 1)

	assert.Equal(t, []string{"Fried Rice"}, gen.lastCriteria.ExistingTitles)

	// Both batches are now resolvable.
	_, err = svc.Resolve(ctx, "sess-1", "r1")
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, "sess-1", "r2")
	require.NoError(t, err)
}

func TestGenerateFailureKeepsPreviousBatch(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]types.Recipe{{{ID: "r1", Title: "Fried Rice"}}}}
	svc := NewSessionService(gen, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)

	gen.err = errors.New("gateway down")
	_, err = svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.Error(t, err)

	recipe, err := svc.Resolve(ctx, "sess-1", "r1")
	require.NoError(t, err)
	assert.Equal(t, "Fried Rice", recipe.Title)
}

func TestSetImageURL(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]types.Recipe{{{ID: "r1", Title: "Fried Rice"}}}}
	svc := NewSessionService(gen, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)

	require.NoError(t, svc.SetImageURL(ctx, "sess-1", "r1", "https://img.example/fried-rice.png"))

	recipe, err := svc.Resolve(ctx, "sess-1", "r1")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/fried-rice.png", recipe.ImageURL)

	err = svc.SetImageURL(ctx, "sess-1", "missing", "https://img.example/x.png")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestClear(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]types.Recipe{{{ID: "r1", Title: "Fried Rice"}}}}
	svc := NewSessionService(gen, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "sess-1", &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess-1"))

	_, err = svc.Resolve(ctx, "sess-1", "r1")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
