package concierge

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rishiboppana/travel-concierge/internal/api"
	"github.com/rishiboppana/travel-concierge/internal/api/booking"
	"github.com/rishiboppana/travel-concierge/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GenerateTripPlan(w http.ResponseWriter, r *http.Request)
	ExportCalendar(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	conciergeService Service
	bookingService   booking.Service
	logger           *slog.Logger
}

func NewHandlerImpl(conciergeService Service, bookingService booking.Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		conciergeService: conciergeService,
		bookingService:   bookingService,
		logger:           logger,
	}
}

type generateTripPlanRequest struct {
	BookingID   uuid.UUID          `json:"booking_id"`
	Preferences *types.Preferences `json:"preferences"`
	FreeText    string             `json:"free_text"`
}

type exportCalendarRequest struct {
	Location  string          `json:"location"`
	Itinerary []types.DayPlan `json:"itinerary"`
}

// GenerateTripPlan handles POST /api/v1/concierge: resolves the booking,
// merges the caller's preferences with defaults and free-text cues, and runs
// the generation pipeline.
func (h *HandlerImpl) GenerateTripPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConciergeHandler").Start(r.Context(), "GenerateTripPlan")
	defer span.End()
	l := h.logger.With(slog.String("HandlerImpl", "GenerateTripPlan"))

	var body generateTripPlanRequest
	if err := api.DecodeJSONBody(w, r, &body); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if body.BookingID == uuid.Nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "booking_id is required")
		return
	}
	span.SetAttributes(attribute.String("booking.id", body.BookingID.String()))

	b, err := h.bookingService.ResolveBooking(ctx, body.BookingID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, booking.ErrBookingNotFound) {
			span.SetStatus(codes.Error, "Booking not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Booking not found")
			return
		}
		l.ErrorContext(ctx, "Failed to resolve booking", slog.Any("error", err))
		span.SetStatus(codes.Error, "Booking resolution failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to resolve booking")
		return
	}

	req := buildTripRequest(b, body.Preferences, body.FreeText)

	plan, err := h.conciergeService.GenerateTripPlan(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Trip plan generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Trip plan generation failed")
		api.ErrorResponse(w, r, http.StatusBadGateway, "Trip plan generation failed")
		return
	}

	span.SetStatus(codes.Ok, "Trip plan generated")
	api.WriteJSONResponse(w, r, http.StatusOK, plan)
}

// ExportCalendar handles POST /api/v1/concierge/calendar: renders a
// previously generated itinerary as an iCalendar feed.
func (h *HandlerImpl) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConciergeHandler").Start(r.Context(), "ExportCalendar")
	defer span.End()
	l := h.logger.With(slog.String("HandlerImpl", "ExportCalendar"))

	var body exportCalendarRequest
	if err := api.DecodeJSONBody(w, r, &body); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(body.Itinerary) == 0 {
		api.ErrorResponse(w, r, http.StatusBadRequest, "itinerary is required")
		return
	}

	feed, err := BuildCalendar(body.Location, body.Itinerary)
	if err != nil {
		l.WarnContext(ctx, "Calendar export failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Calendar export failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	span.SetStatus(codes.Ok, "Calendar exported")
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		l.ErrorContext(ctx, "Failed to write calendar body", slog.Any("error", err))
	}
}

// buildTripRequest merges booking facts with the caller's preferences.
// Absent preferences fall back to the documented defaults; the free-text
// note only ever adds to what the caller supplied.
func buildTripRequest(b *types.Booking, prefs *types.Preferences, freeText string) types.TripRequest {
	merged := types.DefaultPreferences()
	if prefs != nil {
		if prefs.Budget != "" {
			merged.Budget = prefs.Budget
		}
		if len(prefs.Interests) > 0 {
			merged.Interests = prefs.Interests
		}
		if len(prefs.DietaryRestrictions) > 0 {
			merged.DietaryRestrictions = prefs.DietaryRestrictions
		}
		if prefs.MobilityNeeds != "" {
			merged.MobilityNeeds = prefs.MobilityNeeds
		}
	}
	ApplyFreeTextPreferences(&merged, freeText)

	return types.TripRequest{
		Location:  b.Location,
		StartDate: b.CheckIn,
		EndDate:   b.CheckOut,
		Party:     PartyFromGuests(b.Guests, freeText),
		Prefs:     merged,
		FreeText:  freeText,
	}
}
