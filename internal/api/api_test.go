package api

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meal-dashboard/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecretHex = "6d65616c2d706c616e"

func testConfig(url string) *config.Config {
	return &config.Config{
		APIURL:       url,
		APIKey:       "key-1:" + testSecretHex,
		UserID:       "user-7",
		FetchTimeout: 5 * time.Second,
	}
}

// checkAuth verifies the bearer token and request id the client attaches.
func checkAuth(t *testing.T, r *http.Request) {
	t.Helper()
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	secret, _ := hex.DecodeString(testSecretHex)

	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if tok.Header["kid"] != "key-1" {
			return nil, fmt.Errorf("unexpected kid %v", tok.Header["kid"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Errorf("Invalid token: %v", err)
		return
	}
	if sub, _ := token.Claims.GetSubject(); sub != "user-7" {
		t.Errorf("Expected subject 'user-7', got '%s'", sub)
	}
	if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
		t.Errorf("Expected a uuid X-Request-ID, got '%s'", r.Header.Get("X-Request-ID"))
	}
}

func TestListMealPlans(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			checkAuth(t, r)
			if r.URL.Path != "/api/v1/mealplans" {
				t.Errorf("Unexpected path '%s'", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"data": [
					{"id": 1, "meal_plan_name": "Week 1", "dayPlans": [
						{"id": 11, "date": "2024-03-04", "breakfast": {"title": "Oats", "calories": 300, "pricePerServing": 1.2}}
					]},
					{"id": 2, "meal_plan_name": "Week 2", "dayPlans": []}
				]
			}`)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		plans, err := client.ListMealPlans(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(plans) != 2 {
			t.Fatalf("Expected 2 plans, got %d", len(plans))
		}
		if plans[0].DayPlans[0].Breakfast == nil || plans[0].DayPlans[0].Lunch != nil {
			t.Errorf("Unexpected slots: %+v", plans[0].DayPlans[0])
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		if _, err := client.ListMealPlans(context.Background()); err == nil {
			t.Fatal("Expected an error for non-200 status code, got nil")
		}
	})
}

func TestGetGroceryList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		switch r.URL.Path {
		case "/api/v1/mealplans/42/grocery":
			fmt.Fprintln(w, `{"data": {"items": [{"name": "eggs", "amount": 12, "unit": "pcs"}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	t.Run("Success", func(t *testing.T) {
		gl, err := client.GetGroceryList(context.Background(), 42)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if gl.MealPlanID != 42 {
			t.Errorf("Expected plan id to default to 42, got %d", gl.MealPlanID)
		}
		if len(gl.Items) != 1 || gl.Items[0].Name != "eggs" {
			t.Errorf("Unexpected items: %+v", gl.Items)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := client.GetGroceryList(context.Background(), 7)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteMealPlan(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if err := client.DeleteMealPlan(context.Background(), 5); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/mealplans/5" {
		t.Errorf("Unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestRecipes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		switch {
		case r.URL.Path == "/api/v1/recipes":
			if q := r.URL.Query().Get("query"); q != "green curry" {
				t.Errorf("Expected query 'green curry', got '%s'", q)
			}
			fmt.Fprintln(w, `{"data": [{"id": 1, "title": "Curry"}, {"id": 2, "title": "Rice"}]}`)
		case r.URL.Path == "/api/v1/recipes/2":
			fmt.Fprintln(w, `{"data": {"id": 2, "title": "Rice", "ingredients": [{"ingr_id": 4, "ingr_name": "rice", "ingr_amount": 1, "ingr_unit": "cup"}], "instructions": [{"step": "Boil"}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	results, err := client.SearchRecipes(context.Background(), "green curry")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}

	rec, err := client.GetRecipe(context.Background(), 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Ingredients[0].Name != "rice" || rec.Instructions[0].Step != "Boil" {
		t.Errorf("Unexpected recipe: %+v", rec)
	}
}

func TestInvalidAPIKey(t *testing.T) {
	cfg := testConfig("http://unused.test")
	cfg.APIKey = "no-secret"

	_, err := NewClient(cfg).ListMealPlans(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid api key format") {
		t.Errorf("Expected invalid api key error, got %v", err)
	}
}
