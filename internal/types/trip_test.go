package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTripRequestDays(t *testing.T) {
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"three nights", start.AddDate(0, 0, 3), 3},
		{"same day", start, 0},
		{"end before start clamps to zero", start.AddDate(0, 0, -2), 0},
		{"single night", start.AddDate(0, 0, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := TripRequest{StartDate: start, EndDate: tt.end}
			assert.Equal(t, tt.want, req.Days())
		})
	}
}

func TestPriceTierForBudget(t *testing.T) {
	assert.Equal(t, PriceTierLow, PriceTierForBudget(BudgetLow))
	assert.Equal(t, PriceTierMedium, PriceTierForBudget(BudgetMedium))
	assert.Equal(t, PriceTierHigh, PriceTierForBudget(BudgetHigh))
	// Unknown budgets read as medium.
	assert.Equal(t, PriceTierMedium, PriceTierForBudget(BudgetTier("lavish")))
}

func TestPartyTypePhrase(t *testing.T) {
	assert.Equal(t, "2 adults", PartyType{Adults: 2}.Phrase())
	assert.Equal(t, "1 adult", PartyType{Adults: 1}.Phrase())
	assert.Equal(t, "2 adults, 1 child", PartyType{Adults: 2, Children: 1}.Phrase())
	assert.Equal(t, "1 adult, 2 children, 1 infant", PartyType{Adults: 1, Children: 2, Infants: 1}.Phrase())
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	assert.Equal(t, BudgetMedium, prefs.Budget)
	assert.Equal(t, []string{"culture", "food", "nature"}, prefs.Interests)
	assert.Empty(t, prefs.DietaryRestrictions)
	assert.Equal(t, MobilityNone, prefs.MobilityNeeds)
}
