package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leftovercook/backend/internal/types"
)

// ErrRecipeNotFound is returned when a recipe id does not resolve in
// the session's current batch.
var ErrRecipeNotFound = errors.New("recipe not found in session")

const sessionTTL = 24 * time.Hour

// SessionService holds each browsing session's current recipe batch.
// The batch lives in process memory with a Redis snapshot behind it,
// so a restarted instance can still resolve recipes the client is
// showing. Recipes never reach the relational store from here; only
// an explicit save or cook does that.
type SessionService struct {
	generator RecipeGenerator
	redis     *redis.Client

	mu      sync.RWMutex
	batches map[string][]types.Recipe
}

// NewSessionService creates a new SessionService instance. The Redis
// client may be nil, in which case batches are memory-only.
func NewSessionService(generator RecipeGenerator, redisClient *redis.Client) *SessionService {
	return &SessionService{
		generator: generator,
		redis:     redisClient,
		batches:   make(map[string][]types.Recipe),
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:recipes:%s", sessionID)
}

// Generate replaces the session's batch with a fresh one. On gateway
// failure the previous batch is kept untouched.
func (s *SessionService) Generate(ctx context.Context, sessionID string, criteria *types.GenerationCriteria) ([]types.Recipe, error) {
	recipes, err := s.generator.GenerateRecipes(ctx, criteria)
	if err != nil {
		return nil, err
	}

	s.store(ctx, sessionID, recipes)
	return recipes, nil
}

// LoadMore appends a further batch to the session. The titles already
// in the session are passed along as avoidance hints; uniqueness is
// best effort and duplicates are not filtered out here.
func (s *SessionService) LoadMore(ctx context.Context, sessionID string, criteria *types.GenerationCriteria) ([]types.Recipe, error) {
	existing := s.batch(ctx, sessionID)

	titles := make([]string, 0, len(existing)+len(criteria.ExistingTitles))
	titles = append(titles, criteria.ExistingTitles...)
	for _, r := range existing {
		if !contains(titles, r.Title) {
			titles = append(titles, r.Title)
		}
	}
	criteria.ExistingTitles = titles

	recipes, err := s.generator.GenerateRecipes(ctx, criteria)
	if err != nil {
		return nil, err
	}

	s.store(ctx, sessionID, append(existing, recipes...))
	return recipes, nil
}

// Resolve looks a recipe up by id in the session's batch.
func (s *SessionService) Resolve(ctx context.Context, sessionID, recipeID string) (*types.Recipe, error) {
	for _, r := range s.batch(ctx, sessionID) {
		if r.ID == recipeID {
			recipe := r
			return &recipe, nil
		}
	}
	return nil, ErrRecipeNotFound
}

// SetImageURL attaches a generated image to a recipe in the batch.
func (s *SessionService) SetImageURL(ctx context.Context, sessionID, recipeID, imageURL string) error {
	batch := s.batch(ctx, sessionID)
	for i := range batch {
		if batch[i].ID == recipeID {
			batch[i].ImageURL = imageURL
			s.store(ctx, sessionID, batch)
			return nil
		}
	}
	return ErrRecipeNotFound
}

// Clear drops the session's batch ("start over").
func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.batches, sessionID)
	s.mu.Unlock()

	if s.redis != nil {
		if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
			log.Printf("[SessionService] failed to delete session %s from Redis: %v", sessionID, err)
		}
	}
	return nil
}

// batch returns the session's recipes, falling back to the Redis
// snapshot when the in-process cache misses.
func (s *SessionService) batch(ctx context.Context, sessionID string) []types.Recipe {
	s.mu.RLock()
	recipes, ok := s.batches[sessionID]
	s.mu.RUnlock()
	if ok {
		return recipes
	}

	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[SessionService] failed to load session %s from Redis: %v", sessionID, err)
		}
		return nil
	}

	if err := json.Unmarshal(data, &recipes); err != nil {
		log.Printf("[SessionService] corrupt session snapshot for %s: %v", sessionID, err)
		return nil
	}

	s.mu.Lock()
	s.batches[sessionID] = recipes
	s.mu.Unlock()
	return recipes
}

// store writes the batch to the cache and snapshots it to Redis. A
// Redis failure is logged, not surfaced; the in-process copy still
// serves the session.
func (s *SessionService) store(ctx context.Context, sessionID string, recipes []types.Recipe) {
	s.mu.Lock()
	s.batches[sessionID] = recipes
	s.mu.Unlock()

	if s.redis == nil {
		return
	}

	data, err := json.Marshal(recipes)
	if err != nil {
		log.Printf("[SessionService] failed to marshal session %s: %v", sessionID, err)
		return
	}
	if err := s.redis.Set(ctx, sessionKey(sessionID), data, sessionTTL).Err(); err != nil {
		log.Printf("[SessionService] failed to snapshot session %s to Redis: %v", sessionID, err)
	}
}
