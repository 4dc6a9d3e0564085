// Package dashboard decides what the meal-plan dashboard shows and owns the
// grocery-list navigation.
package dashboard

import (
	"errors"
	"log"
	"slices"
	"sync"

	"meal-dashboard/internal/mealplan"
	"meal-dashboard/internal/store"
)

// ErrUnknownMealPlan is returned when an action names a plan that isn't loaded.
var ErrUnknownMealPlan = errors.New("unknown meal plan")

// State is the observable dashboard state. It is derived from a snapshot on
// every render and never stored.
type State string

const (
	// StateUninitialized: no meal plans yet. Shows the manual fetch trigger.
	StateUninitialized State = "uninitialized"
	// StateFailed: the meal plan fetch failed and there is no data to show.
	StateFailed State = "failed"
	// StateLoaded: meal plan cards, no grocery list for the tracked plan.
	StateLoaded State = "loaded"
	// StateLoadedWithGrocery: meal plan cards plus the grocery list.
	StateLoadedWithGrocery State = "loaded_with_grocery"
)

// View is everything a render needs.
type View struct {
	State    State                 `json:"state"`
	Version  uint64                `json:"version"`
	Loading  bool                  `json:"loading"`
	Error    string                `json:"error,omitempty"`
	Cards    []mealplan.Card       `json:"cards,omitempty"`
	Grocery  *mealplan.GroceryList `json:"grocery,omitempty"`
	Redirect string                `json:"redirect,omitempty"`
}

// Fetcher is the fetch layer the controller drives.
type Fetcher interface {
	GetAllMealPlans()
	GetGroceryList()
	DeleteMealPlan(planID int64)
}

// Store is the state container the controller reads and dispatches to.
type Store interface {
	store.Dispatcher
	Snapshot() store.Snapshot
}

// Controller is the dashboard controller.
type Controller struct {
	store   Store
	fetcher Fetcher

	// nav serializes taking the navigation target between renders and
	// GroceryListTarget.
	nav sync.Mutex

	mu       sync.Mutex
	redirect string
}

// New creates the controller and issues the initial meal plan fetch.
func New(s Store, f Fetcher) *Controller {
	c := &Controller{store: s, fetcher: f}
	f.GetAllMealPlans()
	return c
}

// ViewOf derives the dashboard view from a snapshot.
func ViewOf(snap store.Snapshot) View {
	all := snap.MealPlans.GetAllMealPlans
	v := View{Version: snap.Version, Loading: all.Pending}

	if !snap.HasMealPlans() {
		v.State = StateUninitialized
		if all.Err != nil && !all.Pending {
			v.State = StateFailed
			v.Error = all.Err.Error()
		}
		return v
	}

	v.State = StateLoaded
	v.Cards = mealplan.ProjectCards(all.Data)
	if all.Err != nil {
		v.Error = all.Err.Error()
	}
	if gl := snap.GroceryList(); gl != nil {
		v.State = StateLoadedWithGrocery
		v.Grocery = gl
	}
	return v
}

// View renders the current state. A pending navigation target is reported in
// Redirect and cleared, so it is yielded exactly once.
func (c *Controller) View() View {
	v := ViewOf(c.store.Snapshot())
	c.nav.Lock()
	v.Redirect = c.TakeRedirect()
	c.nav.Unlock()
	return v
}

// Refresh is the manual fetch trigger, also used to retry after a failure.
func (c *Controller) Refresh() {
	c.fetcher.GetAllMealPlans()
}

// ViewGroceryList tracks planID as the grocery list subject, fetches its list
// and sets the pending navigation target.
func (c *Controller) ViewGroceryList(planID int64) error {
	if !c.isLoaded(planID) {
		return ErrUnknownMealPlan
	}

	log.Printf("Redirecting to grocery list of meal plan %d", planID)
	c.store.Dispatch(store.Action{
		Type: store.ChangeGetGroceryList,
		Data: store.GroceryListRequest{MealPlanID: planID},
	})
	c.fetcher.GetGroceryList()

	c.mu.Lock()
	c.redirect = mealplan.GroceryPath(planID)
	c.mu.Unlock()
	return nil
}

// GroceryListTarget runs ViewGroceryList and hands the navigation target to
// the caller instead of leaving it for the next render.
func (c *Controller) GroceryListTarget(planID int64) (string, error) {
	c.nav.Lock()
	defer c.nav.Unlock()
	if err := c.ViewGroceryList(planID); err != nil {
		return "", err
	}
	return c.TakeRedirect(), nil
}

// ViewDetails is a placeholder; plan details are not implemented.
func (c *Controller) ViewDetails(planID int64) {}

// Delete asks the backend to remove planID.
func (c *Controller) Delete(planID int64) error {
	if !c.isLoaded(planID) {
		return ErrUnknownMealPlan
	}
	c.fetcher.DeleteMealPlan(planID)
	return nil
}

// PendingRedirect returns the navigation target without clearing it.
func (c *Controller) PendingRedirect() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redirect
}

// TakeRedirect returns and clears the pending navigation target.
func (c *Controller) TakeRedirect() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.redirect
	c.redirect = ""
	return r
}

func (c *Controller) isLoaded(planID int64) bool {
	plans := c.store.Snapshot().MealPlans.GetAllMealPlans.Data
	return slices.ContainsFunc(plans, func(mp mealplan.MealPlan) bool { return mp.ID == planID })
}
