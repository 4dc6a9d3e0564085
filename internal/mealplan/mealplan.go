package mealplan

// Meal is a single dish placed in a day plan slot.
// A nutrient the backend omits decodes as zero; absence is not distinguished.
type Meal struct {
	Title           string  `json:"title"`
	Calories        float64 `json:"calories"`
	Carbs           float64 `json:"carbs"`
	Protein         float64 `json:"protein"`
	Fats            float64 `json:"fats"`
	PricePerServing float64 `json:"pricePerServing"`
}

// DayPlan represents the plan for a single day. Each slot is independently optional.
type DayPlan struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Breakfast *Meal  `json:"breakfast,omitempty"`
	Lunch     *Meal  `json:"lunch,omitempty"`
	Dinner    *Meal  `json:"dinner,omitempty"`
	Snack     *Meal  `json:"snack,omitempty"`
}

// MealPlan represents a named collection of day plans.
type MealPlan struct {
	ID       int64     `json:"id"`
	Name     string    `json:"meal_plan_name"`
	DayPlans []DayPlan `json:"dayPlans"`
}

// GroceryItem is one line of a grocery list.
type GroceryItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// GroceryList is the shopping list the backend derives from a meal plan.
type GroceryList struct {
	MealPlanID int64         `json:"mealPlanId"`
	Items      []GroceryItem `json:"items"`
}
