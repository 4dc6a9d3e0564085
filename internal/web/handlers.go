package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"meal-dashboard/internal/api"
	"meal-dashboard/internal/dashboard"
	"meal-dashboard/internal/metrics"
	"meal-dashboard/internal/recipe"

	"github.com/gin-gonic/gin"
)

// handleDashboard renders the dashboard, or follows a pending navigation.
func (s *Server) handleDashboard(c *gin.Context) {
	v := s.dashboard.View()
	if v.Redirect != "" {
		c.Redirect(http.StatusSeeOther, v.Redirect)
		return
	}

	s.metrics.RecordRender(string(v.State))
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":   "My Meal Plans",
		"Version": v.Version,
		"View":    v,
	})
}

func (s *Server) handleDashboardJSON(c *gin.Context) {
	c.JSON(http.StatusOK, dashboard.ViewOf(s.store.Snapshot()))
}

func (s *Server) handleFetch(c *gin.Context) {
	s.dashboard.Refresh()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleGroceryButton(c *gin.Context) {
	id, ok := s.planID(c)
	if !ok {
		return
	}
	// The client that pressed the button follows the navigation itself.
	target, err := s.dashboard.GroceryListTarget(id)
	if err != nil {
		s.mealPlanError(c, id, err)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (s *Server) handleDetailsButton(c *gin.Context) {
	id, ok := s.planID(c)
	if !ok {
		return
	}
	s.dashboard.ViewDetails(id)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDeleteButton(c *gin.Context) {
	id, ok := s.planID(c)
	if !ok {
		return
	}
	if err := s.dashboard.Delete(id); err != nil {
		s.mealPlanError(c, id, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// handleGroceryPage shows the grocery list of the tracked meal plan.
func (s *Server) handleGroceryPage(c *gin.Context) {
	id, ok := s.planID(c)
	if !ok {
		return
	}

	snap := s.store.Snapshot()
	if snap.MealPlans.GetGroceryList.MealPlanID != id {
		s.notFound(c, fmt.Sprintf("No grocery list was requested for meal plan %d.", id))
		return
	}

	data := gin.H{
		"Title":      "Grocery List",
		"Version":    snap.Version,
		"MealPlanID": id,
		"List":       snap.GroceryList(),
	}
	if resp := snap.MealPlans.GetGLByMPIDResp; resp.Err != nil && !resp.Pending {
		data["Error"] = resp.Err.Error()
	}
	c.HTML(http.StatusOK, "grocery.html", data)
}

// handleRecipeSearch starts a search when q is set, then shows the latest results.
func (s *Server) handleRecipeSearch(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		s.mu.Lock()
		s.query = q
		s.mu.Unlock()

		s.loader.SearchRecipes(q)
		c.Redirect(http.StatusSeeOther, "/recipes")
		return
	}

	s.mu.Lock()
	query := s.query
	s.mu.Unlock()

	snap := s.store.Snapshot()
	resp := snap.Recipes.SearchResp
	data := gin.H{
		"Title":   "Recipes",
		"Version": snap.Version,
		"Query":   query,
		"Loading": resp.Pending,
		"Results": resp.Data,
	}
	if resp.Err != nil && !resp.Pending {
		data["Error"] = resp.Err.Error()
	}
	c.HTML(http.StatusOK, "recipes.html", data)
}

// handleRecipeByIndex opens a search result by position.
func (s *Server) handleRecipeByIndex(c *gin.Context) {
	index, err := strconv.Atoi(c.Query("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid index")
		return
	}

	snap := s.store.Snapshot()
	detail, err := recipe.DetailFor(recipe.IndexNavigation(index), snap.RecipeSources())
	if err != nil {
		s.notFound(c, "Recipe not found.")
		return
	}
	c.HTML(http.StatusOK, "recipe.html", gin.H{
		"Title":   detail.Title,
		"Version": snap.Version,
		"Detail":  detail,
	})
}

func (s *Server) handleRecipeJSON(c *gin.Context) {
	index, err := strconv.Atoi(c.Query("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	detail, err := recipe.DetailFor(recipe.IndexNavigation(index), s.store.Snapshot().RecipeSources())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// handleRecipeByID opens a recipe that is not in the search results. The
// first visit fetches it; retry=1 fetches again after a failure.
func (s *Server) handleRecipeByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid recipe id")
		return
	}

	snap := s.store.Snapshot()
	resp := snap.Recipes.GetRecipeByIDResp
	if resp.Data != nil && resp.Data.ID == id {
		detail := recipe.Project(*resp.Data)
		c.HTML(http.StatusOK, "recipe.html", gin.H{
			"Title":   detail.Title,
			"Version": snap.Version,
			"Detail":  detail,
		})
		return
	}

	s.mu.Lock()
	requested := s.recipeRequested && s.recipeID == id
	s.recipeID = id
	s.recipeRequested = true
	s.mu.Unlock()

	if !requested || c.Query("retry") == "1" {
		s.loader.GetRecipe(id)
		if c.Query("retry") == "1" {
			c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
			return
		}
		snap = s.store.Snapshot()
		resp = snap.Recipes.GetRecipeByIDResp
	}

	if !resp.Pending && errors.Is(resp.Err, api.ErrNotFound) {
		s.notFound(c, fmt.Sprintf("Recipe %d does not exist.", id))
		return
	}

	data := gin.H{
		"Title":   "Recipe",
		"Version": snap.Version,
	}
	if resp.Err != nil && !resp.Pending {
		data["Error"] = resp.Err.Error()
		data["RetryURL"] = fmt.Sprintf("/recipes/%d?retry=1", id)
	}
	c.HTML(http.StatusOK, "recipe.html", data)
}

// handleHealth returns a health check response
func (s *Server) handleHealth(c *gin.Context) {
	snap := s.store.Snapshot()
	health := metrics.GetSysHealth(s.started)
	health.StoreVersion = snap.Version
	health.MealPlansReady = snap.HasMealPlans()
	c.JSON(http.StatusOK, health)
}

func (s *Server) planID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid meal plan id")
		return 0, false
	}
	return id, true
}

func (s *Server) mealPlanError(c *gin.Context, id int64, err error) {
	if errors.Is(err, dashboard.ErrUnknownMealPlan) {
		s.notFound(c, fmt.Sprintf("Meal plan %d is not loaded.", id))
		return
	}
	log.Printf("Meal plan %d action failed: %v", id, err)
	c.String(http.StatusInternalServerError, "internal error")
}

func (s *Server) notFound(c *gin.Context, msg string) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"Title":   "Not Found",
		"Version": s.store.Snapshot().Version,
		"Message": msg,
	})
}
