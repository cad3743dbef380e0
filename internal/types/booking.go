package types

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the relational record a booking identifier resolves to.
type Booking struct {
	ID       uuid.UUID `json:"id"`
	Location string    `json:"location"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Guests   int       `json:"guests"`
}
