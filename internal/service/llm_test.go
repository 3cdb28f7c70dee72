package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leftovercook/backend/internal/types"
)

func newTestLLMService(url string) *LLMService {
	return &LLMService{
		apiKey: "test-key",
		apiURL: url,
		model:  "test-model",
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// gatewayReply wraps content into a chat-completions response body.
func gatewayReply(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestGenerateRecipes(t *testing.T) {
	content := `{"recipes":[
		{"id":"r1","title":"Fried Rice","cuisineType":"Asian","prepTime":20,"calories":450,
		 "ingredients":["rice","egg"],"equipment":["Stovetop"],"instructions":["cook"]},
		{"title":"Veggie Soup","cuisineType":"American","prepTime":30,"calories":300,
		 "ingredients":["carrot"],"equipment":["Stovetop"],"instructions":["simmer"]}
	]}`

	var gotReq chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write(gatewayReply(t, content))
	}))
	defer ts.Close()

	svc := newTestLLMService(ts.URL)
	recipes, err := svc.GenerateRecipes(context.Background(), &types.GenerationCriteria{
		Ingredients:    []string{"rice", "egg"},
		ExistingTitles: []string{"Old Dish"},
	})
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, "r1", recipes[0].ID)
	assert.Equal(t, "Fried Rice", recipes[0].Title)
	assert.NotEmpty(t, recipes[1].ID, "missing ids are filled in")

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, map[string]string{"type": "json_object"}, gotReq.ResponseFormat)
	assert.Contains(t, gotReq.Messages[1].Content, "rice, egg")
	assert.Contains(t, gotReq.Messages[1].Content, "Old Dish")
}

func TestGenerateRecipesMalformedContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gatewayReply(t, "here are some recipes: rice bowl, soup"))
	}))
	defer ts.Close()

	svc := newTestLLMService(ts.URL)
	_, err := svc.GenerateRecipes(context.Background(), &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response format")
}

func TestGenerateRecipesRateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
	}))
	defer ts.Close()

	svc := newTestLLMService(ts.URL)
	_, err := svc.GenerateRecipes(context.Background(), &types.GenerationCriteria{Ingredients: []string{"rice"}})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGenerateRecipesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":"insufficient balance"}`))
	}))
	defer ts.Close()

	svc := newTestLLMService(ts.URL)
	_, err := svc.GenerateRecipes(context.Background(), &types.GenerationCriteria{Ingredients: []string{"rice"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 402")
}

func TestChatSendsRecipeContextAndHistory(t *testing.T) {
	var gotReq chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write(gatewayReply(t, "Use tofu instead of chicken."))
	}))
	defer ts.Close()

	svc := newTestLLMService(ts.URL)
	recipe := &types.Recipe{
		Title:        "Chicken Stir Fry",
		Ingredients:  []string{"chicken", "broccoli"},
		Instructions: []string{"stir fry everything"},
	}
	history := []types.ChatMessage{
		{Role: "user", Content: "Can I make this vegetarian?"},
	}

	reply, err := svc.Chat(context.Background(), recipe, history)
	require.NoError(t, err)
	assert.Equal(t, "Use tofu instead of chicken.", reply)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Chicken Stir Fry")
	assert.Equal(t, "Can I make this vegetarian?", gotReq.Messages[1].Content)
	assert.Nil(t, gotReq.ResponseFormat)
}

func TestBuildGenerationPromptDefaults(t *testing.T) {
	prompt := buildGenerationPrompt(&types.GenerationCriteria{
		Ingredients: []string{"rice"},
		Preferences: types.Preferences{
			CalorieRange: [2]int{200, 800},
			TimeRange:    [2]int{10, 60},
		},
	})

	assert.Contains(t, prompt, "basic kitchen tools")
	assert.Contains(t, prompt, "Assume basic seasonings are available")
	assert.Contains(t, prompt, "Any cuisine type is acceptable")
	assert.Contains(t, prompt, "200-800 kcal")
	assert.Contains(t, prompt, "10-60 minutes")
}
