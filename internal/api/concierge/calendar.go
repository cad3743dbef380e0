package concierge

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// Slot start hours for calendar events, local wall-clock time.
const (
	morningStartHour   = 9
	afternoonStartHour = 12
	eveningStartHour   = 17
)

// BuildCalendar renders an itinerary as an iCalendar feed with one VEVENT
// per activity. Activities in the same slot share the slot's start hour;
// their stated duration is free text, so every event is given a flat
// two-hour window instead of parsing it.
func BuildCalendar(location string, itinerary []types.DayPlan) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TravelConcierge//Itinerary//EN")
	cal.SetXWRCalName(fmt.Sprintf("Trip to %s", location))

	for _, day := range itinerary {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return "", fmt.Errorf("invalid itinerary date %q: %w", day.Date, err)
		}

		slots := []struct {
			hour  int
			cards []types.ActivityCard
		}{
			{morningStartHour, day.Morning},
			{afternoonStartHour, day.Afternoon},
			{eveningStartHour, day.Evening},
		}
		for _, slot := range slots {
			start := time.Date(date.Year(), date.Month(), date.Day(), slot.hour, 0, 0, 0, time.Local)
			for i, card := range slot.cards {
				event := cal.AddEvent(fmt.Sprintf("day%d-%dh-%d@travelconcierge", day.DayNumber, slot.hour, i))
				event.SetCreatedTime(time.Now())
				event.SetStartAt(start)
				event.SetEndAt(start.Add(2 * time.Hour))
				event.SetSummary(card.Title)
				event.SetLocation(card.Address)
				event.SetDescription(card.Description)
			}
		}
	}

	return cal.Serialize(), nil
}
