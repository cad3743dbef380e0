package retrieval

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMetrics "github.com/rishiboppana/travel-concierge/app/observability/metrics"
	"github.com/rishiboppana/travel-concierge/config"
	"github.com/rishiboppana/travel-concierge/internal/types"
)

func init() {
	appMetrics.InitAppMetrics()
}

func testRequest() types.TripRequest {
	return types.TripRequest{
		Location:  "Lisbon",
		StartDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC),
		Party:     types.PartyType{Adults: 2},
		Prefs: types.Preferences{
			Budget:        types.BudgetMedium,
			Interests:     []string{"culture", "food"},
			MobilityNeeds: types.MobilityNone,
		},
	}
}

func newTestTavilyClient(t *testing.T, baseURL string) *TavilyClient {
	t.Helper()
	t.Setenv("TAVILY_API_KEY", "test-key")

	cfg := &config.Config{}
	cfg.Retrieval.BaseURL = baseURL
	cfg.Retrieval.Timeout = 5 * time.Second

	client, err := NewTavilyClient(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return client
}

func TestNewTavilyClient_RequiresAPIKey(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")
	_, err := NewTavilyClient(&config.Config{}, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TAVILY_API_KEY")
}

func TestTavilyClient_Search(t *testing.T) {
	var gotReq tavilySearchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "Belem Tower", "content": "Riverside tower", "url": "https://example.com/belem"},
				{"title": "Alfama", "content": "Old quarter", "url": "https://example.com/alfama"},
			},
		})
	}))
	defer server.Close()

	client := newTestTavilyClient(t, server.URL)
	snippets, err := client.Search(context.Background(), "top attractions in Lisbon", 5, depthAdvanced)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotReq.APIKey)
	assert.Equal(t, "top attractions in Lisbon", gotReq.Query)
	assert.Equal(t, 5, gotReq.MaxResults)
	assert.Equal(t, "advanced", gotReq.SearchDepth)

	require.Len(t, snippets, 2)
	assert.Equal(t, "Belem Tower", snippets[0].Title)
	assert.Equal(t, "https://example.com/alfama", snippets[1].URL)
}

func TestTavilyClient_Search_ClampsToCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]string, 10)
		for i := range results {
			results[i] = map[string]string{"title": "r", "content": "c"}
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
	defer server.Close()

	client := newTestTavilyClient(t, server.URL)
	snippets, err := client.Search(context.Background(), "q", 3, depthBasic)
	require.NoError(t, err)
	assert.Len(t, snippets, 3)
}

func TestTavilyClient_Search_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestTavilyClient(t, server.URL)
	_, err := client.Search(context.Background(), "q", 3, depthBasic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

// MockSearchClient is a mock implementation of the SearchClient interface
type MockSearchClient struct {
	mock.Mock
	mu      sync.Mutex
	queries []string
}

func (m *MockSearchClient) Search(ctx context.Context, query string, maxResults int, depth string) ([]types.Snippet, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	args := m.Called(ctx, query, maxResults, depth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Snippet), args.Error(1)
}

func TestFetchContext_FiveTopicQueries(t *testing.T) {
	client := new(MockSearchClient)
	client.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Snippet{{Title: "t", Content: "c"}}, nil)

	s := NewService(client, slog.New(slog.DiscardHandler))
	bundle := s.FetchContext(context.Background(), testRequest())

	require.Len(t, client.queries, 5)
	assert.Contains(t, client.queries, "events and festivals in Lisbon May 2026")
	assert.Contains(t, client.queries, "top culture food attractions and activities in Lisbon")
	assert.Contains(t, client.queries, "best restaurants in Lisbon")

	assert.Len(t, bundle.Events, 1)
	assert.Len(t, bundle.POIs, 1)
	assert.Len(t, bundle.Restaurants, 1)
	assert.Len(t, bundle.Weather, 1)
	assert.Len(t, bundle.Transportation, 1)
}

func TestFetchContext_QueryModifiers(t *testing.T) {
	req := testRequest()
	req.Party.Children = 1
	req.Prefs.MobilityNeeds = types.MobilityWheelchair
	req.Prefs.DietaryRestrictions = []string{"vegetarian", "gluten-free"}
	req.Prefs.Budget = types.BudgetHigh

	client := new(MockSearchClient)
	client.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Snippet{}, nil)

	s := NewService(client, slog.New(slog.DiscardHandler))
	s.FetchContext(context.Background(), req)

	assert.Contains(t, client.queries,
		"top culture food attractions and activities in Lisbon family-friendly wheelchair accessible")
	assert.Contains(t, client.queries,
		"best vegetarian and gluten-free restaurants in Lisbon fine dining upscale family-friendly")
}

func TestFetchContext_FailedTopicYieldsEmptyList(t *testing.T) {
	client := new(MockSearchClient)
	client.On("Search", mock.Anything, "events and festivals in Lisbon May 2026", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)
	client.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Snippet{{Title: "t", Content: "c"}}, nil)

	s := NewService(client, slog.New(slog.DiscardHandler))
	bundle := s.FetchContext(context.Background(), testRequest())

	assert.NotNil(t, bundle.Events)
	assert.Empty(t, bundle.Events)
	assert.Len(t, bundle.POIs, 1)
	assert.Len(t, bundle.Weather, 1)
}
