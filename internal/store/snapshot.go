package store

import (
	"meal-dashboard/internal/mealplan"
	"meal-dashboard/internal/recipe"
)

// Response is one fetch slot. Data stays nil until a response arrives.
// Generation is the newest request issued for the slot; Pending is true
// until that request completes.
type Response[T any] struct {
	Data       T
	Err        error
	Generation uint64
	Pending    bool
}

// MealPlansState is the mealplans part of the state.
type MealPlansState struct {
	GetAllMealPlans Response[[]mealplan.MealPlan]
	GetGroceryList  GroceryListRequest
	GetGLByMPIDResp Response[*mealplan.GroceryList]
	// DeleteMealPlanResp.Data is the id of the last plan the backend deleted.
	DeleteMealPlanResp Response[int64]
}

// RecipesState is the recipes part of the state.
type RecipesState struct {
	SearchResp        Response[[]recipe.Recipe]
	GetRecipeByIDResp Response[*recipe.Recipe]
}

// Snapshot is an immutable view of the state. Readers must not modify the
// slices it references; the reducer always builds new ones.
type Snapshot struct {
	Version   uint64
	MealPlans MealPlansState
	Recipes   RecipesState
}

// HasMealPlans reports whether the all-plans response carries data.
func (s Snapshot) HasMealPlans() bool {
	return s.MealPlans.GetAllMealPlans.Data != nil
}

// GroceryList returns the grocery list for the tracked plan, or nil.
func (s Snapshot) GroceryList() *mealplan.GroceryList {
	gl := s.MealPlans.GetGLByMPIDResp.Data
	if gl == nil || gl.MealPlanID != s.MealPlans.GetGroceryList.MealPlanID {
		return nil
	}
	return gl
}

// RecipeSources exposes the recipe responses for detail resolution.
func (s Snapshot) RecipeSources() recipe.Sources {
	return recipe.Sources{
		SearchResults: s.Recipes.SearchResp.Data,
		ByID:          s.Recipes.GetRecipeByIDResp.Data,
	}
}
