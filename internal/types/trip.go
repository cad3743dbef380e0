package types

import (
	"fmt"
	"strings"
	"time"
)

// BudgetTier is the coarse budget preference attached to a request.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

// PriceTier is one of three cost buckets shown on cards.
type PriceTier string

const (
	PriceTierLow    PriceTier = "$"
	PriceTierMedium PriceTier = "$$"
	PriceTierHigh   PriceTier = "$$$"
)

// PriceTierForBudget maps the requester's budget to the tier carried by every
// activity and restaurant in the response. The model output never overrides it.
func PriceTierForBudget(budget BudgetTier) PriceTier {
	switch budget {
	case BudgetLow:
		return PriceTierLow
	case BudgetHigh:
		return PriceTierHigh
	default:
		return PriceTierMedium
	}
}

type MobilityNeed string

const (
	MobilityNone       MobilityNeed = "none"
	MobilityLimited    MobilityNeed = "limited"
	MobilityWheelchair MobilityNeed = "wheelchair"
)

// PartyType is the party composition of a booking.
type PartyType struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Phrase renders the party as a human-readable fragment for prompts,
// e.g. "2 adults, 1 child".
func (p PartyType) Phrase() string {
	parts := []string{pluralize(p.Adults, "adult", "adults")}
	if p.Children > 0 {
		parts = append(parts, pluralize(p.Children, "child", "children"))
	}
	if p.Infants > 0 {
		parts = append(parts, pluralize(p.Infants, "infant", "infants"))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Preferences holds the structured travel preferences for one request.
type Preferences struct {
	Budget              BudgetTier   `json:"budget"`
	Interests           []string     `json:"interests"`
	DietaryRestrictions []string     `json:"dietary_restrictions"`
	MobilityNeeds       MobilityNeed `json:"mobility_needs"`
}

// DefaultPreferences mirrors the defaults applied when the caller sends none.
func DefaultPreferences() Preferences {
	return Preferences{
		Budget:              BudgetMedium,
		Interests:           []string{"culture", "food", "nature"},
		DietaryRestrictions: []string{},
		MobilityNeeds:       MobilityNone,
	}
}

// TripRequest is the fully resolved input to the generation pipeline:
// booking facts merged with preferences and the optional free-text note.
type TripRequest struct {
	Location  string      `json:"location"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Party     PartyType   `json:"party_type"`
	Prefs     Preferences `json:"preferences"`
	FreeText  string      `json:"free_text,omitempty"`
}

// Days returns the trip length in days (end - start). A same-day trip is a
// 0-day itinerary.
func (r TripRequest) Days() int {
	days := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Snippet is one retrieved {title, content, source} triple used as grounding
// context for prompts.
type Snippet struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// ContextBundle holds the retrieved topical snippets for one request. It is
// produced once, shared read-only by every generation step, and never
// refreshed mid-request.
type ContextBundle struct {
	Events         []Snippet `json:"events"`
	POIs           []Snippet `json:"pois"`
	Restaurants    []Snippet `json:"restaurants"`
	Weather        []Snippet `json:"weather"`
	Transportation []Snippet `json:"transportation"`
}

// ActivityCard is a single activity or attraction within a day plan.
type ActivityCard struct {
	Title              string    `json:"title"`
	Address            string    `json:"address"`
	PriceTier          PriceTier `json:"price_tier"`
	Duration           string    `json:"duration"`
	Tags               []string  `json:"tags"`
	WheelchairFriendly bool      `json:"wheelchair_friendly"`
	ChildFriendly      bool      `json:"child_friendly"`
	Description        string    `json:"description"`
}

// RestaurantRec is a restaurant recommendation within a day plan.
type RestaurantRec struct {
	Name                 string    `json:"name"`
	Cuisine              string    `json:"cuisine"`
	Address              string    `json:"address"`
	PriceTier            PriceTier `json:"price_tier"`
	DietaryOptions       []string  `json:"dietary_options"`
	Rating               *float64  `json:"rating,omitempty"`
	ChildFriendly        bool      `json:"child_friendly"`
	WheelchairAccessible bool      `json:"wheelchair_accessible"`
	Description          string    `json:"description"`
}

// DayPlan is one day of the itinerary. Day numbers are 1-based and contiguous.
type DayPlan struct {
	DayNumber    int             `json:"day_number"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Morning      []ActivityCard  `json:"morning"`
	Afternoon    []ActivityCard  `json:"afternoon"`
	Evening      []ActivityCard  `json:"evening"`
	Restaurants  []RestaurantRec `json:"restaurants"`
	DailySummary string          `json:"daily_summary"`
}

// TripPlan is the terminal artifact returned to the caller. It is never
// mutated after assembly.
type TripPlan struct {
	Itinerary          []DayPlan `json:"itinerary"`
	PackingChecklist   []string  `json:"packing_checklist"`
	WeatherSummary     string    `json:"weather_summary"`
	LocalTips          []string  `json:"local_tips"`
	TotalEstimatedCost string    `json:"total_estimated_cost"`
}
