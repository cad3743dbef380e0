package concierge

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// Best-effort keyword heuristics over the free-text note. The rules are an
// ordered table of (pattern set -> tag); matching is plain substring search,
// not natural-language understanding, and only ever adds to the structured
// preferences the caller supplied.

type preferenceRule struct {
	patterns []string
	tag      string
}

var dietaryRules = []preferenceRule{
	{patterns: []string{"vegan"}, tag: "vegan"},
	{patterns: []string{"vegetarian"}, tag: "vegetarian"},
	{patterns: []string{"gluten-free", "gluten free"}, tag: "gluten-free"},
	{patterns: []string{"halal"}, tag: "halal"},
	{patterns: []string{"kosher"}, tag: "kosher"},
	{patterns: []string{"dairy-free", "dairy free"}, tag: "dairy-free"},
}

var interestRules = []preferenceRule{
	{patterns: []string{"culture", "museum", "art", "history"}, tag: "culture"},
	{patterns: []string{"food", "restaurant", "dining", "cuisine"}, tag: "food"},
	{patterns: []string{"nature", "outdoor", "hiking", "park", "beach"}, tag: "nature"},
	{patterns: []string{"adventure", "thrill", "sport"}, tag: "adventure"},
	{patterns: []string{"relax", "spa", "calm", "peaceful"}, tag: "relaxation"},
	{patterns: []string{"nightlife", "bar", "club", "party"}, tag: "nightlife"},
	{patterns: []string{"shopping", "mall", "boutique"}, tag: "shopping"},
}

// Ordered: the first matching rule wins, and wheelchair outranks limited.
var mobilityRules = []preferenceRule{
	{patterns: []string{"wheelchair", "accessible"}, tag: string(types.MobilityWheelchair)},
	{patterns: []string{"limited mobility", "no long walk", "no hike"}, tag: string(types.MobilityLimited)},
}

func matchesAny(text string, patterns []string) bool {
	return lo.SomeBy(patterns, func(p string) bool {
		return strings.Contains(text, p)
	})
}

// ApplyFreeTextPreferences enriches prefs with cues detected in the note.
// Existing tags are kept; detected tags are appended without duplicates.
func ApplyFreeTextPreferences(prefs *types.Preferences, freeText string) {
	if freeText == "" {
		return
	}
	text := strings.ToLower(freeText)

	for _, rule := range dietaryRules {
		if matchesAny(text, rule.patterns) && !lo.Contains(prefs.DietaryRestrictions, rule.tag) {
			prefs.DietaryRestrictions = append(prefs.DietaryRestrictions, rule.tag)
		}
	}

	for _, rule := range interestRules {
		if matchesAny(text, rule.patterns) && !lo.Contains(prefs.Interests, rule.tag) {
			prefs.Interests = append(prefs.Interests, rule.tag)
		}
	}

	for _, rule := range mobilityRules {
		if matchesAny(text, rule.patterns) {
			prefs.MobilityNeeds = types.MobilityNeed(rule.tag)
			break
		}
	}
}

// PartyFromGuests splits a booking's flat guest count into a party. The
// booking row does not record ages, so a "kid"/"child" mention in the note
// converts one guest to a child; otherwise all guests count as adults.
func PartyFromGuests(guests int, freeText string) types.PartyType {
	if guests < 1 {
		guests = 1
	}
	party := types.PartyType{Adults: guests}

	text := strings.ToLower(freeText)
	if strings.Contains(text, "kid") || strings.Contains(text, "child") {
		party.Children = 1
		party.Adults = guests - 1
		if party.Adults < 1 {
			party.Adults = 1
		}
	}
	return party
}
