package concierge

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	appMetrics "github.com/rishiboppana/travel-concierge/app/observability/metrics"
	"github.com/rishiboppana/travel-concierge/config"
	generativeAI "github.com/rishiboppana/travel-concierge/internal/api/generative_ai"
	"github.com/rishiboppana/travel-concierge/internal/api/retrieval"
	"github.com/rishiboppana/travel-concierge/internal/types"
)

// Service runs the full generation pipeline for one trip request.
type Service interface {
	GenerateTripPlan(ctx context.Context, req types.TripRequest) (*types.TripPlan, error)
}

var _ Service = (*ServiceImpl)(nil)

// ServiceImpl orchestrates retrieval, per-day synthesis, the supplementary
// generators and cost estimation. Steps run sequentially, each consuming the
// outputs of earlier steps; nothing is retried.
type ServiceImpl struct {
	logger      *slog.Logger
	model       generativeAI.TextGenerator
	retriever   retrieval.Service
	temperature float32
}

func NewService(cfg *config.Config, model generativeAI.TextGenerator, retriever retrieval.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		model:       model,
		retriever:   retriever,
		temperature: cfg.AI.Temperature,
	}
}

// GenerateTripPlan assembles the complete plan: context retrieval once, one
// model call per day, then packing list, weather summary, local tips and the
// cost estimate. A model transport error aborts the request; a malformed
// model response is repaired locally and never surfaces to the caller.
func (s *ServiceImpl) GenerateTripPlan(ctx context.Context, req types.TripRequest) (*types.TripPlan, error) {
	ctx, span := otel.Tracer("ConciergeService").Start(ctx, "GenerateTripPlan", trace.WithAttributes(
		attribute.String("location", req.Location),
		attribute.Int("days", req.Days()),
	))
	defer span.End()

	days := req.Days()
	s.logger.InfoContext(ctx, "Generating trip plan",
		slog.String("location", req.Location),
		slog.Int("days", days),
		slog.String("budget", string(req.Prefs.Budget)))

	bundle := s.retriever.FetchContext(ctx, req)

	itinerary := make([]types.DayPlan, 0, days)
	for dayNumber := 1; dayNumber <= days; dayNumber++ {
		date := req.StartDate.AddDate(0, 0, dayNumber-1)
		day, err := s.generateDayPlan(ctx, dayNumber, req, bundle)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Day plan generation failed")
			return nil, fmt.Errorf("failed to generate day %d: %w", dayNumber, err)
		}
		itinerary = append(itinerary, buildDayPlan(dayNumber, date, req, *day))
	}

	packing, err := s.generatePackingList(ctx, req, bundle.Weather)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Packing list generation failed")
		return nil, err
	}

	weatherSummary, err := s.summarizeWeather(ctx, bundle.Weather)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Weather summary generation failed")
		return nil, err
	}

	tips, err := s.generateLocalTips(ctx, req.Location, bundle.Transportation)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Local tips generation failed")
		return nil, err
	}

	plan := &types.TripPlan{
		Itinerary:          itinerary,
		PackingChecklist:   packing,
		WeatherSummary:     weatherSummary,
		LocalTips:          tips,
		TotalEstimatedCost: s.estimateCost(ctx, req, itinerary),
	}

	span.SetStatus(codes.Ok, "Trip plan generated")
	return plan, nil
}

// generateDayPlan makes the model call for one day and repairs the response.
// Only a transport-level error is returned; an unparseable response falls
// back to the deterministic template.
func (s *ServiceImpl) generateDayPlan(ctx context.Context, dayNumber int, req types.TripRequest, bundle *types.ContextBundle) (*normalizedDay, error) {
	date := req.StartDate.AddDate(0, 0, dayNumber-1)
	prompt := dayPlanPrompt(dayNumber, date, req, bundle)

	response, err := s.model.GenerateText(ctx, prompt, s.temperature)
	if err != nil {
		return nil, err
	}

	raw, ok := parseDayPlanResponse(response)
	if !ok {
		s.logger.WarnContext(ctx, "Unparseable day plan response, using fallback template",
			slog.Int("day", dayNumber))
		appMetrics.Get().DayPlanFallbacksTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.Int("day", dayNumber)))
		day := fallbackDay(dayNumber, req)
		return &day, nil
	}

	day := normalizeDay(raw, dayNumber)
	return &day, nil
}
