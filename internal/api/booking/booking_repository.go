package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	appMetrics "github.com/rishiboppana/travel-concierge/app/observability/metrics"
	"github.com/rishiboppana/travel-concierge/internal/types"
)

// ErrBookingNotFound is returned when the booking identifier resolves to no
// row. Handlers map it to 404; the pipeline never starts.
var ErrBookingNotFound = errors.New("booking not found")

// DB is the subset of pgxpool.Pool the repository needs. Declared as an
// interface so tests can substitute a pgxmock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*PostgresBookingRepository)(nil)

// Repository resolves booking identifiers to their relational records.
type Repository interface {
	GetBookingByID(ctx context.Context, id uuid.UUID) (*types.Booking, error)
}

type PostgresBookingRepository struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresBookingRepository(db DB, logger *slog.Logger) *PostgresBookingRepository {
	return &PostgresBookingRepository{logger: logger, db: db}
}

func (r *PostgresBookingRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*types.Booking, error) {
	query := `
        SELECT id, location, check_in, check_out, guests
        FROM bookings
        WHERE id = $1
    `

	start := time.Now()
	var b types.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Location, &b.CheckIn, &b.CheckOut, &b.Guests,
	)
	appMetrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		appMetrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}

	return &b, nil
}
