package types

// Recipe is a single generated recipe as returned by the generation
// gateway and held in the session store. The JSON field names are the
// wire contract shared with the frontend.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CuisineType  string   `json:"cuisineType"`
	PrepTime     int      `json:"prepTime"`
	Calories     int      `json:"calories"`
	Ingredients  []string `json:"ingredients"`
	Equipment    []string `json:"equipment"`
	Instructions []string `json:"instructions"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

// Ingredient is a free-text wizard entry. The amount is display-only;
// only the name travels to the generation gateway.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
}

// Preferences are assembled fresh for each generation request.
type Preferences struct {
	CuisineType         []string `json:"cuisineType"`
	CalorieRange        [2]int   `json:"calorieRange"`
	TimeRange           [2]int   `json:"timeRange"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
}

// Valid reports whether both ranges are ordered.
func (p *Preferences) Valid() bool {
	return p.CalorieRange[0] <= p.CalorieRange[1] && p.TimeRange[0] <= p.TimeRange[1]
}

// GenerationCriteria is everything the generation gateway needs for one
// batch. ExistingTitles is a best-effort duplicate-avoidance hint used
// by load-more; it carries no uniqueness guarantee.
type GenerationCriteria struct {
	Ingredients      []string    `json:"ingredients"`
	Equipment        []string    `json:"equipment"`
	CommonSeasonings []string    `json:"commonSeasonings"`
	Preferences      Preferences `json:"preferences"`
	ExistingTitles   []string    `json:"existingTitles,omitempty"`
}

// ChatMessage is one turn of a recipe Q&A conversation. The caller
// supplies the full history on every call; the chat service keeps no
// state.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
