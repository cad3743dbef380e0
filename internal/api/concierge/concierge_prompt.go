package concierge

import (
	"fmt"
	"strings"
	"time"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// Prompt rendering for every model call the pipeline makes. The day-plan
// prompt's field names (morning/afternoon/evening/restaurants/summary and
// their entry keys) are a contract with the parser in day_planner.go; keep
// them in sync.

func dayPlanPrompt(dayNumber int, date time.Time, req types.TripRequest, bundle *types.ContextBundle) string {
	poisSummary := snippetExcerpts(bundle.POIs, 8, 200)
	restaurantsSummary := snippetExcerpts(bundle.Restaurants, 5, 150)
	eventsSummary := snippetExcerpts(bundle.Events, 3, 150)

	dietary := "None"
	if len(req.Prefs.DietaryRestrictions) > 0 {
		dietary = strings.Join(req.Prefs.DietaryRestrictions, ", ")
	}

	return fmt.Sprintf(`You are an expert travel planner. Create a detailed day plan for travelers.

Day %d - %s
Location: %s
Party: %s
Interests: %s
Budget: %s
Dietary restrictions: %s
Mobility needs: %s

Available attractions and activities:
%s

Available restaurants:
%s

Local events:
%s

Create a realistic day plan with:
1. MORNING (9 AM - 12 PM): 1-2 activities
2. AFTERNOON (12 PM - 5 PM): 1-2 activities
3. EVENING (5 PM - 9 PM): 1 activity
4. DINING: 2-3 restaurant recommendations

Consider:
- Children need shorter activities and frequent breaks
- Budget constraints (%s)
- Dietary restrictions (%s)
- Mobility needs (%s)
- Mix of activity types
- Logical geographic flow

Format your response as JSON with this structure:
{
  "morning": [{"title": "...", "description": "...", "duration": "...", "location": "..."}],
  "afternoon": [{"title": "...", "description": "...", "duration": "...", "location": "..."}],
  "evening": [{"title": "...", "description": "...", "duration": "...", "location": "..."}],
  "restaurants": [{"name": "...", "cuisine": "...", "why": "...", "location": "..."}],
  "summary": "Brief summary of the day's theme"
}

Only return valid JSON, no other text.`,
		dayNumber,
		date.Format("Monday, January 2, 2006"),
		req.Location,
		req.Party.Phrase(),
		strings.Join(req.Prefs.Interests, ", "),
		req.Prefs.Budget,
		dietary,
		req.Prefs.MobilityNeeds,
		poisSummary,
		restaurantsSummary,
		eventsSummary,
		req.Prefs.Budget,
		dietary,
		req.Prefs.MobilityNeeds,
	)
}

func packingListPrompt(req types.TripRequest, weather []types.Snippet) string {
	return fmt.Sprintf(`Create a packing checklist for a trip to %s.

Trip details:
- Duration: %s to %s
- Party: %s
- Interests: %s
- Mobility needs: %s
- Weather: %s

Provide 10-15 essential items to pack. Be specific and practical.
Return as a simple list, one item per line, no numbering.`,
		req.Location,
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
		req.Party.Phrase(),
		strings.Join(req.Prefs.Interests, ", "),
		req.Prefs.MobilityNeeds,
		joinedContents(weather, 2, 200),
	)
}

func weatherSummaryPrompt(content string) string {
	return fmt.Sprintf(`Summarize this weather information in 1-2 sentences:

%s

Be concise and mention key information like temperature range and conditions.`,
		truncate(content, 500))
}

func localTipsPrompt(location string, transportation []types.Snippet) string {
	return fmt.Sprintf(`Provide 5 practical local tips for travelers visiting %s.

Context: %s

Tips should cover:
- Best times to visit attractions
- Local transportation advice
- Money-saving tips
- Cultural etiquette
- Safety considerations

Return as a list, one tip per line, no numbering.`,
		location,
		joinedContents(transportation, 2, 200),
	)
}

func costEstimatePrompt(location string, days int, budget types.BudgetTier, tally tierTally, samples []string) string {
	return fmt.Sprintf(`You are estimating a per-person travel budget.

Trip: %d days in %s, %s budget preference.

Planned itinerary by price tier:
- Activities: %d at $, %d at $$, %d at $$$
- Restaurant meals: %d at $, %d at $$, %d at $$$

Sample planned items: %s

Reference per-item dollar ranges:
- Activities: $ = 5-15, $$ = 15-40, $$$ = 40-90
- Meals: $ = 10-20, $$ = 20-45, $$$ = 45-100

Location cost multiplier (apply your judgment):
- Low cost-of-living destinations: x0.7
- Average destinations: x1.0
- Expensive destinations (major US/EU cities, resorts): x1.4

Include local transport and incidentals. Exclude accommodation.

Answer with exactly one line in the form: $XXX-$YYY per person`,
		days, location, budget,
		tally.activities[types.PriceTierLow], tally.activities[types.PriceTierMedium], tally.activities[types.PriceTierHigh],
		tally.meals[types.PriceTierLow], tally.meals[types.PriceTierMedium], tally.meals[types.PriceTierHigh],
		strings.Join(samples, "; "),
	)
}
