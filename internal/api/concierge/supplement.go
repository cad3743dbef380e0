package concierge

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

// Packing list, weather summary and local tips are each one model call over
// retrieved context with line-based parsing. The results are informational
// text, so no validation is done beyond line filtering.

const weatherUnavailableNotice = "Weather information not available. Check local forecast before departure."

const (
	maxPackingItems   = 15
	minPackingItemLen = 3
	maxLocalTips      = 5
	minLocalTipLen    = 10
)

func (s *ServiceImpl) generatePackingList(ctx context.Context, req types.TripRequest, weather []types.Snippet) ([]string, error) {
	response, err := s.model.GenerateText(ctx, packingListPrompt(req, weather), s.temperature)
	if err != nil {
		return nil, fmt.Errorf("packing list generation failed: %w", err)
	}
	return parseLines(response, minPackingItemLen, maxPackingItems), nil
}

func (s *ServiceImpl) summarizeWeather(ctx context.Context, weather []types.Snippet) (string, error) {
	if len(weather) == 0 {
		return weatherUnavailableNotice, nil
	}

	response, err := s.model.GenerateText(ctx, weatherSummaryPrompt(weather[0].Content), s.temperature)
	if err != nil {
		return "", fmt.Errorf("weather summary generation failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

func (s *ServiceImpl) generateLocalTips(ctx context.Context, location string, transportation []types.Snippet) ([]string, error) {
	response, err := s.model.GenerateText(ctx, localTipsPrompt(location, transportation), s.temperature)
	if err != nil {
		return nil, fmt.Errorf("local tips generation failed: %w", err)
	}
	return parseLines(response, minLocalTipLen, maxLocalTips), nil
}

// parseLines splits a model response into list entries: one per line, leading
// bullet characters trimmed, entries at or below minLen dropped, capped at
// max. Order is the model's order; duplicates are kept.
func parseLines(response string, minLen, max int) []string {
	items := lo.FilterMap(strings.Split(response, "\n"), func(line string, _ int) (string, bool) {
		item := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•* "))
		return item, len(item) > minLen
	})
	if len(items) > max {
		items = items[:max]
	}
	return items
}
