// Command seed_users creates a set of demo accounts for local
// development, each with a few cooked recipes so the leaderboard has
// content.
package main

import (
	"context"
	"log"

	"github.com/leftovercook/backend/config"
	"github.com/leftovercook/backend/internal/database"
	"github.com/leftovercook/backend/internal/service"
	"github.com/leftovercook/backend/internal/types"
)

var demoUsers = []struct {
	Username string
	Email    string
	Password string
	Cooks    int
}{
	{"chef_maria", "maria@example.com", "password123", 4},
	{"leftover_larry", "larry@example.com", "password123", 2},
	{"waste_not_wanda", "wanda@example.com", "password123", 6},
}

var demoRecipe = types.Recipe{
	ID:           "seed-fried-rice",
	Title:        "Leftover Fried Rice",
	Description:  "A quick skillet fried rice that uses up yesterday's rice and vegetables.",
	CuisineType:  "Asian",
	PrepTime:     20,
	Calories:     450,
	Ingredients:  []string{"2 cups cooked rice", "1 cup mixed vegetables", "2 eggs", "2 tbsp soy sauce"},
	Equipment:    []string{"Stovetop"},
	Instructions: []string{"Heat oil in a wok.", "Scramble the eggs.", "Add rice and vegetables.", "Season with soy sauce."},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret)
	ledger := service.NewLedgerService(db)

	for _, u := range demoUsers {
		token, err := auth.Register(ctx, u.Username, u.Email, u.Password)
		if err != nil {
			log.Printf("skipping %s: %v", u.Username, err)
			continue
		}
		claims, err := auth.ValidateToken(token)
		if err != nil {
			log.Fatalf("failed to validate seed token: %v", err)
		}

		for i := 0; i < u.Cooks; i++ {
			rating := i%5 + 1
			if _, err := ledger.CookRecipe(ctx, claims.UserID, &demoRecipe, rating); err != nil {
				log.Fatalf("failed to seed cooked recipe for %s: %v", u.Username, err)
			}
		}
		log.Printf("seeded %s with %d cooked recipes", u.Username, u.Cooks)
	}
}
