package concierge

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// The model is not schema-constrained, so its answer goes through an explicit
// two-stage repair pipeline: extractJSONObject (lenient, helpers.go) followed
// by strict unmarshalling and per-slot normalization here. When either stage
// fails the day is built from the deterministic template instead; a day is
// never dropped and never empty.

type rawActivity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Location    string `json:"location"`
}

type rawRestaurant struct {
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Why      string `json:"why"`
	Location string `json:"location"`
}

// rawDayPlan keeps the four array fields raw so each slot can be normalized
// independently of the others.
type rawDayPlan struct {
	Morning     json.RawMessage `json:"morning"`
	Afternoon   json.RawMessage `json:"afternoon"`
	Evening     json.RawMessage `json:"evening"`
	Restaurants json.RawMessage `json:"restaurants"`
	Summary     string          `json:"summary"`
}

// normalizedDay is the validated intermediate form every day plan is built
// from, whether parsed from the model or templated by the fallback.
type normalizedDay struct {
	Morning     []rawActivity
	Afternoon   []rawActivity
	Evening     []rawActivity
	Restaurants []rawRestaurant
	Summary     string
}

// parseDayPlanResponse runs both repair stages. ok is false when no JSON
// object could be extracted or the extracted slice is not valid JSON.
func parseDayPlanResponse(response string) (*rawDayPlan, bool) {
	jsonStr, found := extractJSONObject(response)
	if !found {
		return nil, false
	}

	var raw rawDayPlan
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, false
	}
	return &raw, true
}

// normalizeDay converts a parsed raw plan into the validated form.
func normalizeDay(raw *rawDayPlan, dayNumber int) normalizedDay {
	summary := strings.TrimSpace(raw.Summary)
	if summary == "" {
		summary = fmt.Sprintf("Day %d exploration", dayNumber)
	}
	return normalizedDay{
		Morning:     normalizeActivities(raw.Morning, "Morning Activity"),
		Afternoon:   normalizeActivities(raw.Afternoon, "Afternoon Activity"),
		Evening:     normalizeActivities(raw.Evening, "Evening Activity"),
		Restaurants: normalizeRestaurants(raw.Restaurants),
		Summary:     summary,
	}
}

// normalizeActivities accepts a list of structured entries or a list of bare
// strings (plain titles). An absent or null slot is empty; any other shape is
// degraded to a single default-titled entry rather than discarded.
func normalizeActivities(raw json.RawMessage, defaultTitle string) []rawActivity {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var structured []rawActivity
	if err := json.Unmarshal(raw, &structured); err == nil {
		return structured
	}

	var titles []string
	if err := json.Unmarshal(raw, &titles); err == nil {
		activities := make([]rawActivity, 0, len(titles))
		for _, title := range titles {
			activities = append(activities, rawActivity{
				Title:       title,
				Description: fmt.Sprintf("Visit %s.", title),
			})
		}
		return activities
	}

	return []rawActivity{{Title: defaultTitle}}
}

func normalizeRestaurants(raw json.RawMessage) []rawRestaurant {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var structured []rawRestaurant
	if err := json.Unmarshal(raw, &structured); err == nil {
		return structured
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		restaurants := make([]rawRestaurant, 0, len(names))
		for _, name := range names {
			restaurants = append(restaurants, rawRestaurant{Name: name})
		}
		return restaurants
	}

	return []rawRestaurant{{Name: "Local Restaurant"}}
}

// fallbackDay is the deterministic template used when the model response
// cannot be repaired: exactly one activity per time slot and one restaurant,
// templated from the location and interest tags.
func fallbackDay(dayNumber int, req types.TripRequest) normalizedDay {
	location := req.Location
	interests := interestsOrDefault(req.Prefs.Interests)

	afternoonTitle := "Afternoon Activity"
	if len(req.Prefs.Interests) > 0 {
		afternoonTitle = fmt.Sprintf("Afternoon %s Activity", capitalizeFirst(req.Prefs.Interests[0]))
	}

	return normalizedDay{
		Morning: []rawActivity{{
			Title:       fmt.Sprintf("Morning Exploration in %s", location),
			Description: fmt.Sprintf("Start your day exploring %s attractions", interests),
			Duration:    "2-3 hours",
			Location:    location,
		}},
		Afternoon: []rawActivity{{
			Title:       afternoonTitle,
			Description: fmt.Sprintf("Continue your adventure with %s experiences", interests),
			Duration:    "3-4 hours",
			Location:    location,
		}},
		Evening: []rawActivity{{
			Title:       "Evening Dining & Leisure",
			Description: "Enjoy local cuisine and evening atmosphere",
			Duration:    "2 hours",
			Location:    location,
		}},
		Restaurants: []rawRestaurant{{
			Name:     fmt.Sprintf("Local Restaurant in %s", location),
			Cuisine:  "Local cuisine",
			Why:      "Authentic local dining experience",
			Location: location,
		}},
		Summary: fmt.Sprintf("Day %d: Exploring %s in %s", dayNumber, interests, location),
	}
}

// buildDayPlan turns a normalized day into the typed plan. Price tier,
// wheelchair flag and child flag always come from the request: the model has
// no reliable way to judge them.
func buildDayPlan(dayNumber int, date time.Time, req types.TripRequest, day normalizedDay) types.DayPlan {
	priceTier := types.PriceTierForBudget(req.Prefs.Budget)
	hasChildren := req.Party.Children > 0
	needsWheelchair := req.Prefs.MobilityNeeds == types.MobilityWheelchair

	morningTags := req.Prefs.Interests
	if len(morningTags) > 2 {
		morningTags = morningTags[:2]
	}

	return types.DayPlan{
		DayNumber: dayNumber,
		Date:      date.Format("2006-01-02"),
		Morning: buildActivityCards(day.Morning, cardDefaults{
			title: "Morning Activity", description: "Explore local attractions", duration: "2 hours",
		}, req, morningTags, priceTier, hasChildren, needsWheelchair),
		Afternoon: buildActivityCards(day.Afternoon, cardDefaults{
			title: "Afternoon Activity", description: "Main activity of the day", duration: "3 hours",
		}, req, req.Prefs.Interests, priceTier, hasChildren, needsWheelchair),
		Evening: buildActivityCards(day.Evening, cardDefaults{
			title: "Evening Activity", description: "Evening entertainment", duration: "2 hours",
		}, req, []string{"dining", "culture"}, priceTier, hasChildren, needsWheelchair),
		Restaurants:  buildRestaurantRecs(day.Restaurants, req, priceTier, hasChildren, needsWheelchair),
		DailySummary: day.Summary,
	}
}

type cardDefaults struct {
	title       string
	description string
	duration    string
}

func buildActivityCards(activities []rawActivity, defaults cardDefaults, req types.TripRequest,
	tags []string, tier types.PriceTier, childFriendly, wheelchairFriendly bool) []types.ActivityCard {
	cards := make([]types.ActivityCard, 0, len(activities))
	for _, act := range activities {
		cards = append(cards, types.ActivityCard{
			Title:              stringOr(act.Title, defaults.title),
			Address:            stringOr(act.Location, req.Location),
			PriceTier:          tier,
			Duration:           stringOr(act.Duration, defaults.duration),
			Tags:               tags,
			WheelchairFriendly: wheelchairFriendly,
			ChildFriendly:      childFriendly,
			Description:        stringOr(act.Description, defaults.description),
		})
	}
	return cards
}

func buildRestaurantRecs(restaurants []rawRestaurant, req types.TripRequest,
	tier types.PriceTier, childFriendly, wheelchairAccessible bool) []types.RestaurantRec {
	recs := make([]types.RestaurantRec, 0, len(restaurants))
	for _, rest := range restaurants {
		recs = append(recs, types.RestaurantRec{
			Name:                 stringOr(rest.Name, "Local Restaurant"),
			Cuisine:              stringOr(rest.Cuisine, "Local cuisine"),
			Address:              stringOr(rest.Location, req.Location),
			PriceTier:            tier,
			DietaryOptions:       req.Prefs.DietaryRestrictions,
			ChildFriendly:        childFriendly,
			WheelchairAccessible: wheelchairAccessible,
			Description:          stringOr(rest.Why, "Great local dining option"),
		})
	}
	return recs
}

func stringOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
