package recipe

import (
	"errors"
	"strconv"
)

// ErrRecipeNotFound is returned when neither the search results nor the
// by-id lookup yields a recipe.
var ErrRecipeNotFound = errors.New("recipe not found")

// Navigation is the context a detail page is opened with.
// LocalIndex points into the most recent search results.
type Navigation struct {
	LocalIndex *int
}

// IndexNavigation is a shorthand for opening a search result by position.
func IndexNavigation(i int) Navigation {
	return Navigation{LocalIndex: &i}
}

// Sources are the previously fetched recipe responses a detail page can draw from.
type Sources struct {
	SearchResults []Recipe
	ByID          *Recipe
}

// IngredientLine is a renderable ingredient, keyed by the ingredient id.
type IngredientLine struct {
	Key      int64  `json:"key"`
	ImageURL string `json:"image"`
	Amount   string `json:"amount"`
	Unit     string `json:"unit"`
	Name     string `json:"name"`
}

// StepLine is a renderable instruction, keyed by its position.
type StepLine struct {
	Key  int    `json:"key"`
	Text string `json:"text"`
}

// Detail is a recipe projected for the detail page.
type Detail struct {
	Title        string           `json:"title"`
	ImageURL     string           `json:"image_url"`
	Calories     float64          `json:"calories"`
	Carbs        float64          `json:"carbs"`
	Fats         float64          `json:"fats"`
	Protein      float64          `json:"protein"`
	Ingredients  []IngredientLine `json:"ingredients"`
	Instructions []StepLine       `json:"instructions"`
}

// Resolve picks the recipe to display. A local index that lands inside the
// search results wins over the by-id response.
func Resolve(nav Navigation, src Sources) (*Recipe, error) {
	if nav.LocalIndex != nil {
		i := *nav.LocalIndex
		if i >= 0 && i < len(src.SearchResults) {
			return &src.SearchResults[i], nil
		}
	}
	if src.ByID != nil {
		return src.ByID, nil
	}
	return nil, ErrRecipeNotFound
}

// Project derives the detail view. Ingredient and instruction order is preserved.
func Project(r Recipe) Detail {
	d := Detail{
		Title:        r.Title,
		ImageURL:     r.ImageURL,
		Calories:     r.Calories,
		Carbs:        r.Carbs,
		Fats:         r.Fats,
		Protein:      r.Protein,
		Ingredients:  make([]IngredientLine, 0, len(r.Ingredients)),
		Instructions: make([]StepLine, 0, len(r.Instructions)),
	}
	for _, ing := range r.Ingredients {
		d.Ingredients = append(d.Ingredients, IngredientLine{
			Key:      ing.ID,
			ImageURL: ing.ImageURL,
			Amount:   strconv.FormatFloat(ing.Amount, 'f', -1, 64),
			Unit:     ing.Unit,
			Name:     ing.Name,
		})
	}
	for i, inst := range r.Instructions {
		d.Instructions = append(d.Instructions, StepLine{Key: i, Text: inst.Step})
	}
	return d
}

// DetailFor resolves and projects in one step.
func DetailFor(nav Navigation, src Sources) (Detail, error) {
	r, err := Resolve(nav, src)
	if err != nil {
		return Detail{}, err
	}
	return Project(*r), nil
}
