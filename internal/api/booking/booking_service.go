package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the booking-resolution contract the concierge consumes.
type Service interface {
	ResolveBooking(ctx context.Context, id uuid.UUID) (*types.Booking, error)
}

// ServiceImpl caches resolved bookings so repeated plan generations for the
// same booking skip the row fetch.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.Cache
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(10*time.Minute, 30*time.Minute),
	}
}

func (s *ServiceImpl) ResolveBooking(ctx context.Context, id uuid.UUID) (*types.Booking, error) {
	ctx, span := otel.Tracer("BookingService").Start(ctx, "ResolveBooking", trace.WithAttributes(
		attribute.String("booking.id", id.String()),
	))
	defer span.End()

	cacheKey := fmt.Sprintf("booking:%s", id)
	if cached, found := s.cache.Get(cacheKey); found {
		if b, ok := cached.(*types.Booking); ok {
			span.SetStatus(codes.Ok, "Booking served from cache")
			return b, nil
		}
	}

	b, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Booking lookup failed")
		return nil, err
	}

	s.cache.Set(cacheKey, b, cache.DefaultExpiration)
	s.logger.InfoContext(ctx, "Booking resolved",
		slog.String("booking_id", id.String()),
		slog.String("location", b.Location))
	span.SetStatus(codes.Ok, "Booking resolved")
	return b, nil
}
