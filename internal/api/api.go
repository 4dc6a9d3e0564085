package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meal-dashboard/internal/config"
	"meal-dashboard/internal/mealplan"
	"meal-dashboard/internal/recipe"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNotFound is returned when the backend answers 404.
var ErrNotFound = errors.New("not found")

// Client is an interface for the meal-plan backend.
type Client interface {
	ListMealPlans(ctx context.Context) ([]mealplan.MealPlan, error)
	GetGroceryList(ctx context.Context, mealPlanID int64) (*mealplan.GroceryList, error)
	DeleteMealPlan(ctx context.Context, mealPlanID int64) error
	SearchRecipes(ctx context.Context, query string) ([]recipe.Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*recipe.Recipe, error)
}

// envelope is the top-level structure of every backend response.
type envelope[T any] struct {
	Data T `json:"data"`
}

// httpClient is the concrete implementation of the backend client.
type httpClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a new backend API client.
func NewClient(cfg *config.Config) Client {
	return &httpClient{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		config:     cfg,
	}
}

// ListMealPlans fetches all meal plans of the configured user.
func (c *httpClient) ListMealPlans(ctx context.Context) ([]mealplan.MealPlan, error) {
	var resp envelope[[]mealplan.MealPlan]
	if err := c.do(ctx, http.MethodGet, "/api/v1/mealplans", &resp); err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return resp.Data, nil
}

// GetGroceryList fetches the grocery list derived from a meal plan.
func (c *httpClient) GetGroceryList(ctx context.Context, mealPlanID int64) (*mealplan.GroceryList, error) {
	var resp envelope[mealplan.GroceryList]
	path := fmt.Sprintf("/api/v1/mealplans/%d/grocery", mealPlanID)
	if err := c.do(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to get grocery list for meal plan %d: %w", mealPlanID, err)
	}
	if resp.Data.MealPlanID == 0 {
		resp.Data.MealPlanID = mealPlanID
	}
	return &resp.Data, nil
}

// DeleteMealPlan removes a meal plan.
func (c *httpClient) DeleteMealPlan(ctx context.Context, mealPlanID int64) error {
	path := fmt.Sprintf("/api/v1/mealplans/%d", mealPlanID)
	if err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("failed to delete meal plan %d: %w", mealPlanID, err)
	}
	return nil
}

// SearchRecipes runs a recipe search.
func (c *httpClient) SearchRecipes(ctx context.Context, query string) ([]recipe.Recipe, error) {
	var resp envelope[[]recipe.Recipe]
	path := "/api/v1/recipes?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return resp.Data, nil
}

// GetRecipe fetches a single recipe by id.
func (c *httpClient) GetRecipe(ctx context.Context, id int64) (*recipe.Recipe, error) {
	var resp envelope[recipe.Recipe]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", id), &resp); err != nil {
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return &resp.Data, nil
}

func (c *httpClient) do(ctx context.Context, method, path string, out any) error {
	token, err := c.createToken()
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// createToken generates a short-lived JWT signed with the configured key.
func (c *httpClient) createToken() (string, error) {
	keyParts := strings.Split(c.config.APIKey, ":")
	if len(keyParts) != 2 {
		return "", fmt.Errorf("invalid api key format: expected id:secret")
	}

	id := keyParts[0]
	secretHex := keyParts[1]

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": c.config.UserID,
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}
