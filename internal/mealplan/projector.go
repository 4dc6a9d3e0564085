package mealplan

import (
	"fmt"
	"strconv"
)

// Slot labels, in the order they are rendered.
const (
	SlotBreakfast = "Breakfast"
	SlotLunch     = "Lunch"
	SlotDinner    = "Dinner"
	SlotSnack     = "Snack"
)

// MealDescription is the renderable summary of a meal.
type MealDescription struct {
	Title           string  `json:"title"`
	Calories        float64 `json:"calories"`
	Carbs           float64 `json:"carbs"`
	Protein         float64 `json:"protein"`
	Fats            float64 `json:"fats"`
	PricePerServing string  `json:"pricePerServing"`
}

// SlotView pairs a slot label with the meal placed in it.
type SlotView struct {
	Label string          `json:"label"`
	Meal  MealDescription `json:"meal"`
}

// DayView is a day plan projected for rendering.
type DayView struct {
	Key   int64      `json:"key"`
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

// Card is a meal plan projected for rendering.
type Card struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Days  []DayView `json:"days"`
}

// DescribeMeal returns nil when there is no meal to render.
func DescribeMeal(meal *Meal) *MealDescription {
	if meal == nil {
		return nil
	}
	return &MealDescription{
		Title:           meal.Title,
		Calories:        meal.Calories,
		Carbs:           meal.Carbs,
		Protein:         meal.Protein,
		Fats:            meal.Fats,
		PricePerServing: FormatPrice(meal.PricePerServing),
	}
}

// FormatPrice renders a price with exactly two decimal digits.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// ProjectDay lists the present slots of a day plan in breakfast, lunch, dinner, snack order.
// Absent slots produce no entry.
func ProjectDay(dp DayPlan) DayView {
	slots := []struct {
		label string
		meal  *Meal
	}{
		{SlotBreakfast, dp.Breakfast},
		{SlotLunch, dp.Lunch},
		{SlotDinner, dp.Dinner},
		{SlotSnack, dp.Snack},
	}

	view := DayView{Key: dp.ID, Date: dp.Date, Slots: []SlotView{}}
	for _, s := range slots {
		desc := DescribeMeal(s.meal)
		if desc == nil {
			continue
		}
		view.Slots = append(view.Slots, SlotView{Label: s.label, Meal: *desc})
	}
	return view
}

// ProjectCard projects a meal plan, keeping day plans in input order.
func ProjectCard(mp MealPlan) Card {
	card := Card{ID: mp.ID, Title: mp.Name, Days: make([]DayView, 0, len(mp.DayPlans))}
	for _, dp := range mp.DayPlans {
		card.Days = append(card.Days, ProjectDay(dp))
	}
	return card
}

// ProjectCards projects every plan in order.
func ProjectCards(plans []MealPlan) []Card {
	cards := make([]Card, 0, len(plans))
	for _, mp := range plans {
		cards = append(cards, ProjectCard(mp))
	}
	return cards
}

// GroceryPath is the navigation target for a plan's grocery list.
func GroceryPath(planID int64) string {
	return fmt.Sprintf("/grocery/%d", planID)
}
