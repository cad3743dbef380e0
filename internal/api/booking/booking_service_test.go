package booking

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*types.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Booking), args.Error(1)
}

func TestResolveBooking_CachesResult(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetBookingByID", mock.Anything, id).Return(&types.Booking{
		ID:       id,
		Location: "Lisbon",
		CheckIn:  time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC),
		Guests:   2,
	}, nil).Once()

	s := NewService(repo, slog.New(slog.DiscardHandler))

	first, err := s.ResolveBooking(context.Background(), id)
	require.NoError(t, err)

	second, err := s.ResolveBooking(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GetBookingByID", 1)
}

func TestResolveBooking_NotFoundPassesThrough(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetBookingByID", mock.Anything, id).Return(nil, ErrBookingNotFound)

	s := NewService(repo, slog.New(slog.DiscardHandler))

	_, err := s.ResolveBooking(context.Background(), id)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestResolveBooking_ErrorsAreNotCached(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetBookingByID", mock.Anything, id).Return(nil, ErrBookingNotFound).Once()
	repo.On("GetBookingByID", mock.Anything, id).Return(&types.Booking{ID: id, Location: "Porto", Guests: 1}, nil).Once()

	s := NewService(repo, slog.New(slog.DiscardHandler))

	_, err := s.ResolveBooking(context.Background(), id)
	require.ErrorIs(t, err, ErrBookingNotFound)

	b, err := s.ResolveBooking(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Porto", b.Location)
	repo.AssertNumberOfCalls(t, "GetBookingByID", 2)
}
