package service

import (
	"hash/fnv"
	"math"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/leftovercook/backend/internal/types"
)

// recipeEmbedding builds a small deterministic vector from a recipe's
// title and ingredients. It is a cheap stand-in for a real embedding
// model; nearest-neighbour search over it still groups recipes that
// share ingredient text.
func recipeEmbedding(recipe *types.Recipe) pgvector.Vector {
	text := strings.ToLower(recipe.Title + " " + strings.Join(recipe.Ingredients, " "))

	dims := [3]float32{}
	for i, word := range strings.Fields(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		dims[i%3] += float32(h.Sum32()%1000) / 1000.0
	}

	var norm float64
	for _, d := range dims {
		norm += float64(d) * float64(d)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range dims {
			dims[i] *= scale
		}
	}

	return pgvector.NewVector(dims[:])
}
