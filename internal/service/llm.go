package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leftovercook/backend/internal/types"
)

// ErrRateLimited is returned when the generation gateway rejects the
// call with 429. The caller surfaces the message and waits for the
// user to retry; there is no automatic backoff.
var ErrRateLimited = errors.New("generation service rate limit exceeded")

// LLMService talks to an OpenAI-compatible chat-completions gateway
// for recipe generation and recipe Q&A.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("LLM_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("LLM_API_KEY or LLM_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("LLM_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "deepseek-chat"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// chatRequest is the gateway request body.
type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []types.ChatMessage `json:"messages"`
	ResponseFormat map[string]string   `json:"response_format,omitempty"`
	Temperature    float64             `json:"temperature,omitempty"`
}

const generationSystemPrompt = `You are an expert chef specializing in creative leftover recipes and food waste reduction.
Your mission is to transform leftover ingredients into delicious, restaurant-quality meals.

Core principles:
- Maximize use of all provided ingredients, especially leftovers
- Suggest creative flavor combinations that mask "leftover taste"
- Focus on practical, achievable recipes for home cooks
- Ensure food safety when working with leftovers

Return your response as a JSON object with this exact structure:
{
  "recipes": [
    {
      "id": "unique-id",
      "title": "Recipe Title",
      "description": "Brief description",
      "cuisineType": "Cuisine Type",
      "prepTime": number,
      "calories": number,
      "ingredients": ["ingredient1", "ingredient2"],
      "equipment": ["equipment1", "equipment2"],
      "instructions": ["step1", "step2"]
    }
  ]
}

prepTime is minutes and calories is kcal per serving; both must be numbers, not strings.`

// GenerateRecipes asks the gateway for 3-5 recipes matching the
// criteria. The gateway owns recipe id uniqueness; any entry that
// arrives without an id is assigned one here so the batch is always
// resolvable. Malformed content is a hard error, never partially
// accepted.
func (s *LLMService) GenerateRecipes(ctx context.Context, criteria *types.GenerationCriteria) ([]types.Recipe, error) {
	messages := []types.ChatMessage{
		{Role: "system", Content: generationSystemPrompt},
		{Role: "user", Content: buildGenerationPrompt(criteria)},
	}

	content, err := s.complete(ctx, messages, true)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Recipes []types.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		log.Printf("[LLMService] unparseable generation response: %s", content)
		return nil, fmt.Errorf("invalid response format from generation service: %w", err)
	}

	for i := range wrapper.Recipes {
		if wrapper.Recipes[i].ID == "" {
			wrapper.Recipes[i].ID = uuid.New().String()
		}
	}
	return wrapper.Recipes, nil
}

const chatSystemPrompt = `You are a friendly cooking assistant. Answer questions about the recipe below: substitutions, techniques, timing, scaling. Keep answers practical and concise.`

// Chat answers one question about a recipe. The full history arrives
// on every call; nothing is remembered between calls.
func (s *LLMService) Chat(ctx context.Context, recipe *types.Recipe, history []types.ChatMessage) (string, error) {
	system := fmt.Sprintf("%s\n\nRecipe: %s\nDescription: %s\nIngredients:\n%s\nInstructions:\n%s",
		chatSystemPrompt,
		recipe.Title,
		recipe.Description,
		strings.Join(recipe.Ingredients, "\n"),
		strings.Join(recipe.Instructions, "\n"),
	)

	messages := make([]types.ChatMessage, 0, len(history)+1)
	messages = append(messages, types.ChatMessage{Role: "system", Content: system})
	messages = append(messages, history...)

	return s.complete(ctx, messages, false)
}

// complete performs one gateway round trip and returns the assistant
// message content.
func (s *LLMService) complete(ctx context.Context, messages []types.ChatMessage, jsonMode bool) (string, error) {
	reqBody := chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.9,
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: %s", ErrRateLimited, strings.TrimSpace(string(body)))
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// buildGenerationPrompt renders the criteria into the user prompt.
func buildGenerationPrompt(criteria *types.GenerationCriteria) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create 3-5 creative recipe suggestions using these leftover ingredients: %s.\n",
		strings.Join(criteria.Ingredients, ", "))
	b.WriteString("Treat these as leftover or surplus ingredients that need to be used creatively.\n")

	if len(criteria.ExistingTitles) > 0 {
		fmt.Fprintf(&b, "Avoid creating recipes similar to these already shown: %s. Create completely different dishes.\n",
			strings.Join(criteria.ExistingTitles, ", "))
	}

	equipment := "basic kitchen tools"
	if len(criteria.Equipment) > 0 {
		equipment = strings.Join(criteria.Equipment, ", ")
	}
	fmt.Fprintf(&b, "Available equipment: %s\n", equipment)

	if len(criteria.CommonSeasonings) > 0 {
		fmt.Fprintf(&b, "Common seasonings available: %s\n", strings.Join(criteria.CommonSeasonings, ", "))
	} else {
		b.WriteString("Assume basic seasonings are available\n")
	}

	prefs := criteria.Preferences
	if len(prefs.CuisineType) > 0 {
		fmt.Fprintf(&b, "Focus on these cuisine types: %s.\n", strings.Join(prefs.CuisineType, ", "))
	} else {
		b.WriteString("Any cuisine type is acceptable.\n")
	}
	if len(prefs.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "Dietary restrictions: %s.\n", strings.Join(prefs.DietaryRestrictions, ", "))
	}
	fmt.Fprintf(&b, "Calories: %d-%d kcal per serving\n", prefs.CalorieRange[0], prefs.CalorieRange[1])
	fmt.Fprintf(&b, "Preparation time: %d-%d minutes\n", prefs.TimeRange[0], prefs.TimeRange[1])

	return b.String()
}
