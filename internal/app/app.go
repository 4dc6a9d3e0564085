package app

import (
	"fmt"
	"io"
	"log"
	"sync"

	"meal-dashboard/internal/api"
	"meal-dashboard/internal/config"
	"meal-dashboard/internal/dashboard"
	"meal-dashboard/internal/loader"
	"meal-dashboard/internal/metrics"
	"meal-dashboard/internal/recipe"
	"meal-dashboard/internal/store"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	store        *store.Store
	metricsStore *metrics.Store
	loader       *loader.Loader
	out          io.Writer

	dashboardOnce sync.Once
	dashboard     *dashboard.Controller
}

// NewApp wires the store and loader around client. out receives the CLI output.
func NewApp(cfg *config.Config, client api.Client, out io.Writer) *App {
	st := store.New()
	metricsStore := metrics.NewStore()
	st.Observe(func(a store.Action, applied bool) {
		metricsStore.RecordDispatch(string(a.Type), applied)
	})

	ld := loader.New(client, st, metricsStore, cfg.FetchTimeout)

	return &App{
		cfg:          cfg,
		store:        st,
		metricsStore: metricsStore,
		loader:       ld,
		out:          out,
	}
}

func (a *App) Store() *store.Store     { return a.store }
func (a *App) Metrics() *metrics.Store { return a.metricsStore }
func (a *App) Loader() *loader.Loader  { return a.loader }

// Dashboard returns the dashboard controller. The first call creates it,
// which issues the initial meal plan fetch.
func (a *App) Dashboard() *dashboard.Controller {
	a.dashboardOnce.Do(func() {
		a.dashboard = dashboard.New(a.store, a.loader)
	})
	return a.dashboard
}

// Close waits for in-flight fetches.
func (a *App) Close() {
	a.loader.Wait()
}

// PrintDashboard waits for the meal plans and prints every card.
func (a *App) PrintDashboard() error {
	dash := a.Dashboard()
	a.loader.Wait()

	v := dash.View()
	a.metricsStore.RecordRender(string(v.State))
	if v.State == dashboard.StateFailed {
		return fmt.Errorf("failed to load meal plans: %s", v.Error)
	}

	fmt.Fprintln(a.out, "=== MY MEAL PLANS ===")
	if len(v.Cards) == 0 {
		fmt.Fprintln(a.out, "No meal plans.")
		return nil
	}
	for _, card := range v.Cards {
		fmt.Fprintf(a.out, "\n[%d] %s\n", card.ID, card.Title)
		for _, day := range card.Days {
			fmt.Fprintf(a.out, "  %s\n", day.Date)
			for _, slot := range day.Slots {
				m := slot.Meal
				fmt.Fprintf(a.out, "    %-10s %s (%g kcal, $%s)\n", slot.Label+":", m.Title, m.Calories, m.PricePerServing)
			}
		}
	}
	return nil
}

// PrintGroceryList selects a meal plan's grocery list and prints it.
func (a *App) PrintGroceryList(planID int64) error {
	dash := a.Dashboard()
	a.loader.Wait()
	if err := dash.ViewGroceryList(planID); err != nil {
		return fmt.Errorf("meal plan %d: %w", planID, err)
	}
	a.loader.Wait()

	v := dash.View()
	if v.Grocery == nil {
		if err := a.store.Snapshot().MealPlans.GetGLByMPIDResp.Err; err != nil {
			return fmt.Errorf("failed to load grocery list: %w", err)
		}
		return fmt.Errorf("no grocery list for meal plan %d", planID)
	}
	log.Printf("Loaded %d grocery items for meal plan %d", len(v.Grocery.Items), planID)

	fmt.Fprintf(a.out, "=== GROCERY LIST (meal plan %d) ===\n", planID)
	for _, item := range v.Grocery.Items {
		fmt.Fprintf(a.out, "- %g %s %s\n", item.Amount, item.Unit, item.Name)
	}
	return nil
}

// PrintRecipe fetches a recipe by id and prints its detail view.
func (a *App) PrintRecipe(id int64) error {
	a.loader.GetRecipe(id)
	a.loader.Wait()

	snap := a.store.Snapshot()
	if err := snap.Recipes.GetRecipeByIDResp.Err; err != nil {
		return fmt.Errorf("failed to load recipe %d: %w", id, err)
	}
	detail, err := recipe.DetailFor(recipe.Navigation{}, snap.RecipeSources())
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "=== %s ===\n", detail.Title)
	fmt.Fprintf(a.out, "Calories: %g  Carbs: %g  Fats: %g  Protein: %g\n", detail.Calories, detail.Carbs, detail.Fats, detail.Protein)
	fmt.Fprintln(a.out, "\nIngredients:")
	for _, ing := range detail.Ingredients {
		fmt.Fprintf(a.out, "- %s %s %s\n", ing.Amount, ing.Unit, ing.Name)
	}
	fmt.Fprintln(a.out, "\nInstructions:")
	for _, step := range detail.Instructions {
		fmt.Fprintf(a.out, "%d. %s\n", step.Key+1, step.Text)
	}
	return nil
}
