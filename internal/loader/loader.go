// Package loader issues backend requests on behalf of the controllers.
// Every call returns immediately; results reach the store as actions.
package loader

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"meal-dashboard/internal/api"
	"meal-dashboard/internal/store"

	"github.com/sourcegraph/conc"
)

// State is what the loader needs from the store.
type State interface {
	store.Dispatcher
	Snapshot() store.Snapshot
}

// FetchRecorder receives the outcome of every backend call.
type FetchRecorder interface {
	RecordFetch(slot string, latency time.Duration, err error)
}

// Loader runs fire-and-forget fetches. Each request gets a generation so the
// store can discard a completion that a newer request superseded.
type Loader struct {
	client   api.Client
	state    State
	recorder FetchRecorder
	timeout  time.Duration

	generation atomic.Uint64
	wg         conc.WaitGroup
}

// New creates a Loader. recorder may be nil.
func New(client api.Client, state State, recorder FetchRecorder, timeout time.Duration) *Loader {
	return &Loader{
		client:   client,
		state:    state,
		recorder: recorder,
		timeout:  timeout,
	}
}

// GetAllMealPlans populates the all-meal-plans slot.
func (l *Loader) GetAllMealPlans() {
	l.run(store.SlotAllMealPlans, func(ctx context.Context, gen uint64) (store.Action, error) {
		plans, err := l.client.ListMealPlans(ctx)
		return store.MealPlansResult(gen, plans, err), err
	})
}

// GetGroceryList fetches the grocery list of the plan currently tracked in the store.
func (l *Loader) GetGroceryList() {
	planID := l.state.Snapshot().MealPlans.GetGroceryList.MealPlanID
	l.run(store.SlotGroceryList, func(ctx context.Context, gen uint64) (store.Action, error) {
		list, err := l.client.GetGroceryList(ctx, planID)
		return store.GroceryListResult(gen, list, err), err
	})
}

// DeleteMealPlan removes a plan on the backend.
func (l *Loader) DeleteMealPlan(planID int64) {
	l.run(store.SlotDeleteMealPlan, func(ctx context.Context, gen uint64) (store.Action, error) {
		err := l.client.DeleteMealPlan(ctx, planID)
		return store.DeleteResult(gen, planID, err), err
	})
}

// SearchRecipes populates the search results slot.
func (l *Loader) SearchRecipes(query string) {
	l.run(store.SlotSearchRecipes, func(ctx context.Context, gen uint64) (store.Action, error) {
		recipes, err := l.client.SearchRecipes(ctx, query)
		return store.SearchResult(gen, recipes, err), err
	})
}

// GetRecipe populates the recipe-by-id slot.
func (l *Loader) GetRecipe(id int64) {
	l.run(store.SlotRecipeByID, func(ctx context.Context, gen uint64) (store.Action, error) {
		r, err := l.client.GetRecipe(ctx, id)
		return store.RecipeResult(gen, r, err), err
	})
}

// Wait blocks until every issued fetch has dispatched its result.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) run(slot store.Slot, fetch func(context.Context, uint64) (store.Action, error)) {
	gen := l.generation.Add(1)
	l.state.Dispatch(store.Action{Type: store.FetchStarted, Data: store.FetchStart{Slot: slot, Generation: gen}})

	l.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		start := time.Now()
		action, err := fetch(ctx, gen)
		if l.recorder != nil {
			l.recorder.RecordFetch(string(slot), time.Since(start), err)
		}
		if err != nil {
			log.Printf("Fetch %s (generation %d) failed: %v", slot, gen, err)
		}
		l.state.Dispatch(action)
	})
}
