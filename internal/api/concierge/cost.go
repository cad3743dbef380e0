package concierge

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// Cost estimation has a model path and a deterministic path. The model path
// tabulates the realized itinerary by price tier and asks for a single-line
// dollar range; anything that goes wrong there (transport error, no
// extractable range, inverted range) silently falls through to the
// deterministic formula. The returned string always has the form
// "$<min>-$<max> per person (excluding accommodation)" with min <= max.

// Deterministic per-item weights in dollars.
var (
	activityTierCost = map[types.PriceTier]int{
		types.PriceTierLow:    10,
		types.PriceTierMedium: 25,
		types.PriceTierHigh:   60,
	}
	mealTierCost = map[types.PriceTier]int{
		types.PriceTierLow:    15,
		types.PriceTierMedium: 30,
		types.PriceTierHigh:   70,
	}
	// Daily per-person rate table for trips with no realized itinerary.
	budgetDailyRate = map[types.BudgetTier][2]int{
		types.BudgetLow:    {50, 90},
		types.BudgetMedium: {90, 160},
		types.BudgetHigh:   {160, 280},
	}
)

const (
	dailyTransportCost = 20
	miscBufferRate     = 0.15
	costRangeSpread    = 0.15
)

type tierTally struct {
	activities map[types.PriceTier]int
	meals      map[types.PriceTier]int
	samples    []string
}

func (t tierTally) total() int {
	n := 0
	for _, c := range t.activities {
		n += c
	}
	for _, c := range t.meals {
		n += c
	}
	return n
}

// tallyItinerary counts activities and meals by price tier and collects a few
// sample item names for the prompt. Purely arithmetic, independent of the model.
func tallyItinerary(itinerary []types.DayPlan) tierTally {
	tally := tierTally{
		activities: map[types.PriceTier]int{},
		meals:      map[types.PriceTier]int{},
	}
	const maxSamples = 5
	for _, day := range itinerary {
		for _, cards := range [][]types.ActivityCard{day.Morning, day.Afternoon, day.Evening} {
			for _, card := range cards {
				tally.activities[card.PriceTier]++
				if len(tally.samples) < maxSamples {
					tally.samples = append(tally.samples, fmt.Sprintf("%s (%s)", card.Title, card.PriceTier))
				}
			}
		}
		for _, rest := range day.Restaurants {
			tally.meals[rest.PriceTier]++
			if len(tally.samples) < maxSamples {
				tally.samples = append(tally.samples, fmt.Sprintf("%s (%s)", rest.Name, rest.PriceTier))
			}
		}
	}
	return tally
}

func (s *ServiceImpl) estimateCost(ctx context.Context, req types.TripRequest, itinerary []types.DayPlan) string {
	tally := tallyItinerary(itinerary)
	days := req.Days()

	if tally.total() == 0 {
		minCost, maxCost := dailyRateEstimate(req.Prefs.Budget, days)
		return formatCostRange(minCost, maxCost)
	}

	prompt := costEstimatePrompt(req.Location, days, req.Prefs.Budget, tally, tally.samples)
	response, err := s.model.GenerateText(ctx, prompt, s.temperature)
	if err != nil {
		s.logger.WarnContext(ctx, "Cost estimation model call failed, using deterministic formula",
			slog.Any("error", err))
		return formatCostRange(formulaEstimate(tally, days))
	}

	if minCost, maxCost, ok := extractCostRange(response); ok {
		return formatCostRange(minCost, maxCost)
	}

	s.logger.WarnContext(ctx, "No cost range found in model response, using deterministic formula")
	return formatCostRange(formulaEstimate(tally, days))
}

var (
	costRangePattern  = regexp.MustCompile(`\$\s*(\d[\d,\s]*?)\s*-\s*\$\s*(\d[\d,]*)`)
	costNumberPattern = regexp.MustCompile(`\$\s*([\d][\d,]*)`)
)

// extractCostRange searches free text for a $<digits>-$<digits> pattern,
// tolerating embedded commas and spaces. When the full pattern is absent it
// falls back to the first line, provided that line carries two dollar amounts.
// An inverted range is rejected so the caller uses the deterministic formula.
func extractCostRange(response string) (int, int, bool) {
	if m := costRangePattern.FindStringSubmatch(response); m != nil {
		minCost, err1 := parseDollars(m[1])
		maxCost, err2 := parseDollars(m[2])
		if err1 == nil && err2 == nil && minCost <= maxCost {
			return minCost, maxCost, true
		}
	}

	firstLine := strings.TrimSpace(strings.SplitN(response, "\n", 2)[0])
	if strings.Contains(firstLine, "$") {
		if nums := costNumberPattern.FindAllStringSubmatch(firstLine, 2); len(nums) == 2 {
			minCost, err1 := parseDollars(nums[0][1])
			maxCost, err2 := parseDollars(nums[1][1])
			if err1 == nil && err2 == nil && minCost <= maxCost {
				return minCost, maxCost, true
			}
		}
	}

	return 0, 0, false
}

func parseDollars(s string) (int, error) {
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	return strconv.Atoi(s)
}

// formulaEstimate is the deterministic tier-weighted fallback: item weights
// plus per-day transport, a 15% miscellaneous buffer, reported as a +/-15%
// band around the total.
func formulaEstimate(tally tierTally, days int) (int, int) {
	subtotal := 0
	for tier, count := range tally.activities {
		subtotal += activityTierCost[tier] * count
	}
	for tier, count := range tally.meals {
		subtotal += mealTierCost[tier] * count
	}
	subtotal += days * dailyTransportCost

	total := float64(subtotal) * (1 + miscBufferRate)
	minCost := int(math.Round(total * (1 - costRangeSpread)))
	maxCost := int(math.Round(total * (1 + costRangeSpread)))
	return minCost, maxCost
}

// dailyRateEstimate covers trips with nothing to tabulate (e.g. a 0-day
// trip): the budget-tier daily-rate table scaled by trip length.
func dailyRateEstimate(budget types.BudgetTier, days int) (int, int) {
	rates, ok := budgetDailyRate[budget]
	if !ok {
		rates = budgetDailyRate[types.BudgetMedium]
	}
	return rates[0] * days, rates[1] * days
}

func formatCostRange(minCost, maxCost int) string {
	return fmt.Sprintf("$%d-$%d per person (excluding accommodation)", minCost, maxCost)
}
