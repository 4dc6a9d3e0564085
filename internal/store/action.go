package store

import (
	"meal-dashboard/internal/mealplan"
	"meal-dashboard/internal/recipe"
)

// ActionType tags an update intent.
type ActionType string

const (
	// ChangeGetGroceryList records which plan is the active grocery-list subject.
	ChangeGetGroceryList ActionType = "CHANGE_GET_GROCERY_LIST"
	// FetchStarted records the generation of a newly issued request for a slot.
	FetchStarted ActionType = "FETCH_STARTED"

	GetAllMealPlansResp ActionType = "GET_ALL_MEALPLANS_RESP"
	GetGroceryListResp  ActionType = "GET_GL_BY_MPID_RESP"
	DeleteMealPlanResp  ActionType = "DELETE_MEALPLAN_RESP"
	SearchRecipesResp   ActionType = "SEARCH_RECIPES_RESP"
	GetRecipeByIDResp   ActionType = "GET_RECIPE_BY_ID_RESP"
)

// Slot names the part of the state a fetch populates.
type Slot string

const (
	SlotAllMealPlans   Slot = "get_all_mealplans"
	SlotGroceryList    Slot = "get_gl_by_mpid_resp"
	SlotDeleteMealPlan Slot = "delete_mealplan_resp"
	SlotSearchRecipes  Slot = "search_resp"
	SlotRecipeByID     Slot = "get_recipe_by_id_resp"
)

// Action is a tagged update intent submitted to the store.
type Action struct {
	Type ActionType
	Data any
}

// GroceryListRequest is the payload of ChangeGetGroceryList.
type GroceryListRequest struct {
	MealPlanID int64 `json:"mealPlanId"`
}

// FetchStart is the payload of FetchStarted.
type FetchStart struct {
	Slot       Slot
	Generation uint64
}

// Result is the payload of every *_RESP action. Value holds the slot's data type.
type Result struct {
	Generation uint64
	Value      any
	Err        error
}

// MealPlansResult wraps the all-plans response.
func MealPlansResult(gen uint64, plans []mealplan.MealPlan, err error) Action {
	return Action{Type: GetAllMealPlansResp, Data: Result{Generation: gen, Value: plans, Err: err}}
}

// GroceryListResult wraps a grocery-list response.
func GroceryListResult(gen uint64, list *mealplan.GroceryList, err error) Action {
	return Action{Type: GetGroceryListResp, Data: Result{Generation: gen, Value: list, Err: err}}
}

// DeleteResult wraps the outcome of deleting planID.
func DeleteResult(gen uint64, planID int64, err error) Action {
	return Action{Type: DeleteMealPlanResp, Data: Result{Generation: gen, Value: planID, Err: err}}
}

// SearchResult wraps a recipe search response.
func SearchResult(gen uint64, recipes []recipe.Recipe, err error) Action {
	return Action{Type: SearchRecipesResp, Data: Result{Generation: gen, Value: recipes, Err: err}}
}

// RecipeResult wraps a get-recipe-by-id response.
func RecipeResult(gen uint64, r *recipe.Recipe, err error) Action {
	return Action{Type: GetRecipeByIDResp, Data: Result{Generation: gen, Value: r, Err: err}}
}
