package recipe

// Ingredient is one line of a recipe's ingredient list. ID is unique within a recipe.
type Ingredient struct {
	ID       int64   `json:"ingr_id"`
	ImageURL string  `json:"ingr_image_url"`
	Amount   float64 `json:"ingr_amount"`
	Unit     string  `json:"ingr_unit"`
	Name     string  `json:"ingr_name"`
}

// Instruction is a single step. Its identity is its position in the list.
type Instruction struct {
	Step string `json:"step"`
}

// Recipe represents a recipe as returned by the backend search and lookup endpoints.
type Recipe struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	ImageURL     string        `json:"image_url"`
	Calories     float64       `json:"calories"`
	Carbs        float64       `json:"carbs"`
	Fats         float64       `json:"fats"`
	Protein      float64       `json:"protein"`
	Ingredients  []Ingredient  `json:"ingredients"`
	Instructions []Instruction `json:"instructions"`
}
