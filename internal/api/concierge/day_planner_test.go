package concierge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

func testRequest() types.TripRequest {
	return types.TripRequest{
		Location:  "Lisbon",
		StartDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC),
		Party:     types.PartyType{Adults: 2},
		Prefs: types.Preferences{
			Budget:              types.BudgetMedium,
			Interests:           []string{"culture", "food"},
			DietaryRestrictions: []string{"vegetarian"},
			MobilityNeeds:       types.MobilityNone,
		},
	}
}

func TestParseDayPlanResponse_FencedJSON(t *testing.T) {
	response := "```json\n{\"morning\": [{\"title\": \"Alfama Walk\"}], \"summary\": \"Old town day\"}\n```"

	raw, ok := parseDayPlanResponse(response)
	require.True(t, ok)
	assert.Equal(t, "Old town day", raw.Summary)

	day := normalizeDay(raw, 1)
	require.Len(t, day.Morning, 1)
	assert.Equal(t, "Alfama Walk", day.Morning[0].Title)
}

func TestParseDayPlanResponse_ProseAroundJSON(t *testing.T) {
	response := "Sure! Here is your plan:\n{\"summary\": \"Beach day\"}\nEnjoy your trip!"

	raw, ok := parseDayPlanResponse(response)
	require.True(t, ok)
	assert.Equal(t, "Beach day", raw.Summary)
}

func TestParseDayPlanResponse_NoJSON(t *testing.T) {
	_, ok := parseDayPlanResponse("I cannot help with that.")
	assert.False(t, ok)
}

func TestParseDayPlanResponse_InvalidJSON(t *testing.T) {
	_, ok := parseDayPlanResponse("{\"morning\": [")
	assert.False(t, ok)
}

func TestNormalizeActivities_StringList(t *testing.T) {
	raw, ok := parseDayPlanResponse(`{"morning": ["Castle", "Market"]}`)
	require.True(t, ok)

	day := normalizeDay(raw, 2)
	require.Len(t, day.Morning, 2)
	assert.Equal(t, "Castle", day.Morning[0].Title)
	assert.Equal(t, "Visit Castle.", day.Morning[0].Description)
	assert.Equal(t, "Market", day.Morning[1].Title)
}

func TestNormalizeActivities_UnexpectedShape(t *testing.T) {
	raw, ok := parseDayPlanResponse(`{"afternoon": {"title": "not a list"}}`)
	require.True(t, ok)

	day := normalizeDay(raw, 1)
	require.Len(t, day.Afternoon, 1)
	assert.Equal(t, "Afternoon Activity", day.Afternoon[0].Title)
}

func TestNormalizeDay_MissingSummary(t *testing.T) {
	raw, ok := parseDayPlanResponse(`{"evening": []}`)
	require.True(t, ok)

	day := normalizeDay(raw, 3)
	assert.Equal(t, "Day 3 exploration", day.Summary)
	assert.Empty(t, day.Evening)
}

func TestNormalizeRestaurants_NameList(t *testing.T) {
	raw, ok := parseDayPlanResponse(`{"restaurants": ["Taberna Sol"]}`)
	require.True(t, ok)

	day := normalizeDay(raw, 1)
	require.Len(t, day.Restaurants, 1)
	assert.Equal(t, "Taberna Sol", day.Restaurants[0].Name)
}

func TestFallbackDay_Template(t *testing.T) {
	req := testRequest()
	day := fallbackDay(2, req)

	require.Len(t, day.Morning, 1)
	require.Len(t, day.Afternoon, 1)
	require.Len(t, day.Evening, 1)
	require.Len(t, day.Restaurants, 1)

	assert.Equal(t, "Morning Exploration in Lisbon", day.Morning[0].Title)
	assert.Equal(t, "2-3 hours", day.Morning[0].Duration)
	assert.Equal(t, "Afternoon Culture Activity", day.Afternoon[0].Title)
	assert.Equal(t, "Evening Dining & Leisure", day.Evening[0].Title)
	assert.Equal(t, "Local Restaurant in Lisbon", day.Restaurants[0].Name)
	assert.Equal(t, "Day 2: Exploring culture, food in Lisbon", day.Summary)
}

func TestFallbackDay_NoInterests(t *testing.T) {
	req := testRequest()
	req.Prefs.Interests = nil

	day := fallbackDay(1, req)
	assert.Equal(t, "Afternoon Activity", day.Afternoon[0].Title)
	assert.Contains(t, day.Morning[0].Description, "sightseeing")
}

func TestBuildDayPlan_TierAndFlagsComeFromRequest(t *testing.T) {
	req := testRequest()
	req.Prefs.Budget = types.BudgetHigh
	req.Prefs.MobilityNeeds = types.MobilityWheelchair
	req.Party = types.PartyType{Adults: 2, Children: 1}

	day := normalizedDay{
		Morning:     []rawActivity{{Title: "Museum"}},
		Restaurants: []rawRestaurant{{Name: "Bistro"}},
		Summary:     "A day",
	}
	plan := buildDayPlan(1, req.StartDate, req, day)

	require.Len(t, plan.Morning, 1)
	assert.Equal(t, types.PriceTierHigh, plan.Morning[0].PriceTier)
	assert.True(t, plan.Morning[0].WheelchairFriendly)
	assert.True(t, plan.Morning[0].ChildFriendly)

	require.Len(t, plan.Restaurants, 1)
	assert.Equal(t, types.PriceTierHigh, plan.Restaurants[0].PriceTier)
	assert.True(t, plan.Restaurants[0].WheelchairAccessible)
	assert.True(t, plan.Restaurants[0].ChildFriendly)
	assert.Equal(t, []string{"vegetarian"}, plan.Restaurants[0].DietaryOptions)
}

func TestBuildDayPlan_DefaultsFillEmptyFields(t *testing.T) {
	req := testRequest()
	day := normalizedDay{
		Afternoon: []rawActivity{{}},
		Summary:   "Quiet day",
	}
	plan := buildDayPlan(2, req.StartDate.AddDate(0, 0, 1), req, day)

	assert.Equal(t, 2, plan.DayNumber)
	assert.Equal(t, "2026-05-11", plan.Date)
	require.Len(t, plan.Afternoon, 1)
	assert.Equal(t, "Afternoon Activity", plan.Afternoon[0].Title)
	assert.Equal(t, "Main activity of the day", plan.Afternoon[0].Description)
	assert.Equal(t, "3 hours", plan.Afternoon[0].Duration)
	assert.Equal(t, "Lisbon", plan.Afternoon[0].Address)
}

func TestBuildDayPlan_SlotTags(t *testing.T) {
	req := testRequest()
	req.Prefs.Interests = []string{"culture", "food", "nature"}

	day := normalizedDay{
		Morning:   []rawActivity{{Title: "a"}},
		Afternoon: []rawActivity{{Title: "b"}},
		Evening:   []rawActivity{{Title: "c"}},
	}
	plan := buildDayPlan(1, req.StartDate, req, day)

	assert.Equal(t, []string{"culture", "food"}, plan.Morning[0].Tags)
	assert.Equal(t, []string{"culture", "food", "nature"}, plan.Afternoon[0].Tags)
	assert.Equal(t, []string{"dining", "culture"}, plan.Evening[0].Tags)
}
