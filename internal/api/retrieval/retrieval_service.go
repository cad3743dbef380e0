package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	appMetrics "github.com/rishiboppana/travel-concierge/app/observability/metrics"
	"github.com/rishiboppana/travel-concierge/config"
	"github.com/rishiboppana/travel-concierge/internal/types"
)

// Per-topic result caps. The retrieval service never returns more than these.
const (
	maxEventResults      = 5
	maxPOIResults        = 10
	maxRestaurantResults = 8
	maxWeatherResults    = 3
	maxTransportResults  = 3
)

const (
	depthBasic    = "basic"
	depthAdvanced = "advanced"
)

// SearchClient is the transport-level contract with the knowledge-retrieval
// service: a free-text query and a result cap in, ranked snippets out.
type SearchClient interface {
	Search(ctx context.Context, query string, maxResults int, depth string) ([]types.Snippet, error)
}

var _ SearchClient = (*TavilyClient)(nil)

// TavilyClient talks to the Tavily search REST API.
type TavilyClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewTavilyClient(cfg *config.Config, logger *slog.Logger) (*TavilyClient, error) {
	apiKey := os.Getenv("TAVILY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY environment variable is not set")
	}

	baseURL := cfg.Retrieval.BaseURL
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	timeout := cfg.Retrieval.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &TavilyClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}, nil
}

type tavilySearchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilySearchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int, depth string) ([]types.Snippet, error) {
	body, err := json.Marshal(tavilySearchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: depth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search request returned status %d: %s", resp.StatusCode, string(payload))
	}

	var parsed tavilySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	snippets := make([]types.Snippet, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		snippets = append(snippets, types.Snippet{Title: r.Title, Content: r.Content, URL: r.URL})
	}
	if len(snippets) > maxResults {
		snippets = snippets[:maxResults]
	}
	return snippets, nil
}

// Service gathers the contextual snippets for one trip request.
type Service interface {
	FetchContext(ctx context.Context, req types.TripRequest) *types.ContextBundle
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	client SearchClient
	logger *slog.Logger
}

func NewService(client SearchClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{client: client, logger: logger}
}

// FetchContext runs the five topic queries and assembles the context bundle.
// Failure is isolated per topic: a failed query yields an empty list and a
// warning, never an error. The bundle is built once per request and is
// read-only afterwards.
func (s *ServiceImpl) FetchContext(ctx context.Context, req types.TripRequest) *types.ContextBundle {
	ctx, span := otel.Tracer("RetrievalService").Start(ctx, "FetchContext", trace.WithAttributes(
		attribute.String("location", req.Location),
	))
	defer span.End()

	bundle := &types.ContextBundle{
		Events:         s.topicSearch(ctx, "events", eventsQuery(req), maxEventResults, depthAdvanced),
		POIs:           s.topicSearch(ctx, "pois", poiQuery(req), maxPOIResults, depthAdvanced),
		Restaurants:    s.topicSearch(ctx, "restaurants", restaurantQuery(req), maxRestaurantResults, depthAdvanced),
		Weather:        s.topicSearch(ctx, "weather", weatherQuery(req), maxWeatherResults, depthBasic),
		Transportation: s.topicSearch(ctx, "transportation", transportQuery(req), maxTransportResults, depthBasic),
	}

	span.SetAttributes(
		attribute.Int("events.count", len(bundle.Events)),
		attribute.Int("pois.count", len(bundle.POIs)),
		attribute.Int("restaurants.count", len(bundle.Restaurants)),
		attribute.Int("weather.count", len(bundle.Weather)),
	)
	span.SetStatus(codes.Ok, "Context gathered")
	return bundle
}

func (s *ServiceImpl) topicSearch(ctx context.Context, topic, query string, maxResults int, depth string) []types.Snippet {
	s.logger.DebugContext(ctx, "Searching topic",
		slog.String("topic", topic),
		slog.String("query", query))

	snippets, err := s.client.Search(ctx, query, maxResults, depth)
	if err != nil {
		s.logger.WarnContext(ctx, "Topic search failed, continuing with empty results",
			slog.String("topic", topic),
			slog.Any("error", err))
		appMetrics.Get().RetrievalErrorsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("topic", topic)))
		return []types.Snippet{}
	}
	return snippets
}

func eventsQuery(req types.TripRequest) string {
	return fmt.Sprintf("events and festivals in %s %s",
		req.Location, req.StartDate.Format("January 2006"))
}

func poiQuery(req types.TripRequest) string {
	interests := req.Prefs.Interests
	if len(interests) > 3 {
		interests = interests[:3]
	}

	var modifiers []string
	if req.Party.Children > 0 {
		modifiers = append(modifiers, "family-friendly")
	}
	if req.Prefs.MobilityNeeds == types.MobilityWheelchair {
		modifiers = append(modifiers, "wheelchair accessible")
	}

	return strings.TrimSpace(fmt.Sprintf("top %s attractions and activities in %s %s",
		strings.Join(interests, " "), req.Location, strings.Join(modifiers, " ")))
}

func restaurantQuery(req types.TripRequest) string {
	var query string
	if len(req.Prefs.DietaryRestrictions) > 0 {
		query = fmt.Sprintf("best %s restaurants in %s",
			strings.Join(req.Prefs.DietaryRestrictions, " and "), req.Location)
	} else {
		query = fmt.Sprintf("best restaurants in %s", req.Location)
	}

	switch req.Prefs.Budget {
	case types.BudgetLow:
		query += " affordable budget-friendly"
	case types.BudgetHigh:
		query += " fine dining upscale"
	}

	if req.Party.Children > 0 {
		query += " family-friendly"
	}
	return query
}

func weatherQuery(req types.TripRequest) string {
	return fmt.Sprintf("weather forecast %s %s",
		req.Location, req.StartDate.Format("January 2, 2006"))
}

func transportQuery(req types.TripRequest) string {
	return fmt.Sprintf("public transportation and getting around %s", req.Location)
}
