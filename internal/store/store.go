package store

import (
	"log"
	"slices"
	"sync"

	"meal-dashboard/internal/mealplan"
	"meal-dashboard/internal/recipe"
)

// Dispatcher submits update intents. It is the only way state changes.
type Dispatcher interface {
	Dispatch(a Action)
}

// Store holds the process-wide state. Dispatch is the single writer; readers
// get immutable snapshots.
type Store struct {
	mu          sync.Mutex
	snap        Snapshot
	subscribers map[int]chan Snapshot
	nextSubID   int
	observer    func(Action, bool)
}

// New creates an empty store.
func New() *Store {
	return &Store{subscribers: make(map[int]chan Snapshot)}
}

// Observe registers a callback invoked after every dispatch with whether the
// action changed the state. Used for metrics.
func (s *Store) Observe(fn func(a Action, applied bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Dispatch applies an action and notifies subscribers when the state changed.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	next, applied := reduce(s.snap, a)
	if applied {
		next.Version = s.snap.Version + 1
		s.snap = next
		for _, ch := range s.subscribers {
			publish(ch, next)
		}
	}
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer(a, applied)
	}
}

// Subscribe returns a channel that receives the latest snapshot after every
// change. A slow reader only sees the newest one. Call cancel to stop.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Snapshot, 1)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
	return ch, cancel
}

func publish(ch chan Snapshot, snap Snapshot) {
	select {
	case <-ch:
	default:
	}
	ch <- snap
}

func reduce(s Snapshot, a Action) (Snapshot, bool) {
	switch a.Type {
	case ChangeGetGroceryList:
		req, ok := a.Data.(GroceryListRequest)
		if !ok {
			break
		}
		s.MealPlans.GetGroceryList = req
		return s, true

	case FetchStarted:
		start, ok := a.Data.(FetchStart)
		if !ok {
			break
		}
		return startFetch(s, start)

	case GetAllMealPlansResp:
		res, ok := a.Data.(Result)
		if !ok {
			break
		}
		plans, _ := res.Value.([]mealplan.MealPlan)
		if res.Err == nil && plans == nil {
			plans = []mealplan.MealPlan{}
		}
		return s, complete(&s.MealPlans.GetAllMealPlans, res, plans)

	case GetGroceryListResp:
		res, ok := a.Data.(Result)
		if !ok {
			break
		}
		list, _ := res.Value.(*mealplan.GroceryList)
		if res.Err == nil && (list == nil || list.MealPlanID != s.MealPlans.GetGroceryList.MealPlanID) {
			log.Printf("Discarding grocery list for a plan that is no longer tracked")
			break
		}
		return s, complete(&s.MealPlans.GetGLByMPIDResp, res, list)

	case DeleteMealPlanResp:
		res, ok := a.Data.(Result)
		if !ok {
			break
		}
		planID, _ := res.Value.(int64)
		removed := false
		if res.Err == nil {
			// Deletes of different plans don't supersede each other.
			s.MealPlans.GetAllMealPlans.Data, removed = withoutPlan(s.MealPlans.GetAllMealPlans.Data, planID)
			if planID == s.MealPlans.GetGroceryList.MealPlanID {
				s.MealPlans.GetGroceryList = GroceryListRequest{}
				s.MealPlans.GetGLByMPIDResp.Data = nil
				s.MealPlans.GetGLByMPIDResp.Err = nil
				removed = true
			}
		}
		applied := complete(&s.MealPlans.DeleteMealPlanResp, res, planID)
		return s, applied || removed

	case SearchRecipesResp:
		res, ok := a.Data.(Result)
		if !ok {
			break
		}
		recipes, _ := res.Value.([]recipe.Recipe)
		if res.Err == nil && recipes == nil {
			recipes = []recipe.Recipe{}
		}
		return s, complete(&s.Recipes.SearchResp, res, recipes)

	case GetRecipeByIDResp:
		res, ok := a.Data.(Result)
		if !ok {
			break
		}
		r, _ := res.Value.(*recipe.Recipe)
		return s, complete(&s.Recipes.GetRecipeByIDResp, res, r)
	}
	return s, false
}

func startFetch(s Snapshot, start FetchStart) (Snapshot, bool) {
	switch start.Slot {
	case SlotAllMealPlans:
		begin(&s.MealPlans.GetAllMealPlans, start.Generation)
	case SlotGroceryList:
		begin(&s.MealPlans.GetGLByMPIDResp, start.Generation)
	case SlotDeleteMealPlan:
		begin(&s.MealPlans.DeleteMealPlanResp, start.Generation)
	case SlotSearchRecipes:
		begin(&s.Recipes.SearchResp, start.Generation)
	case SlotRecipeByID:
		begin(&s.Recipes.GetRecipeByIDResp, start.Generation)
	default:
		return s, false
	}
	return s, true
}

func begin[T any](r *Response[T], gen uint64) {
	if gen > r.Generation {
		r.Generation = gen
	}
	r.Pending = true
	r.Err = nil
}

// complete applies a result unless a newer request for the slot was issued
// after it. On error the previous data is kept.
func complete[T any](r *Response[T], res Result, value T) bool {
	if res.Generation < r.Generation {
		log.Printf("Discarding stale response (generation %d, latest %d)", res.Generation, r.Generation)
		return false
	}
	r.Generation = res.Generation
	r.Pending = false
	if res.Err != nil {
		r.Err = res.Err
		return true
	}
	r.Data = value
	r.Err = nil
	return true
}

func withoutPlan(plans []mealplan.MealPlan, id int64) ([]mealplan.MealPlan, bool) {
	i := slices.IndexFunc(plans, func(mp mealplan.MealPlan) bool { return mp.ID == id })
	if i < 0 {
		return plans, false
	}
	return slices.Delete(slices.Clone(plans), i, i+1), true
}
