package concierge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rishiboppana/travel-concierge/internal/types"
)

func TestParseLines_BulletsAndShortEntries(t *testing.T) {
	response := "- Sunscreen\n• Hat\n* Comfortable walking shoes\n\nok\n  - Rain jacket  "

	items := parseLines(response, minPackingItemLen, maxPackingItems)

	assert.Equal(t, []string{"Sunscreen", "Comfortable walking shoes", "Rain jacket"}, items)
}

func TestParseLines_CapsAtMax(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		lines = append(lines, "Packing item number "+strings.Repeat("x", i+1))
	}

	items := parseLines(strings.Join(lines, "\n"), minPackingItemLen, maxPackingItems)
	assert.Len(t, items, maxPackingItems)
}

func TestGeneratePackingList(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("GenerateText", mock.Anything, mock.Anything, float32(0.7)).
		Return("Sunscreen\nHat\nWalking shoes", nil)
	s := newTestService(model)

	items, err := s.generatePackingList(context.Background(), testRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunscreen", "Walking shoes"}, items)
}

func TestGeneratePackingList_ModelErrorPropagates(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("GenerateText", mock.Anything, mock.Anything, float32(0.7)).
		Return("", errors.New("rate limited"))
	s := newTestService(model)

	_, err := s.generatePackingList(context.Background(), testRequest(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "packing list")
}

func TestSummarizeWeather_NoSnippetsSkipsModel(t *testing.T) {
	model := new(MockTextGenerator)
	s := newTestService(model)

	summary, err := s.summarizeWeather(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, weatherUnavailableNotice, summary)
	model.AssertNotCalled(t, "GenerateText")
}

func TestSummarizeWeather_TrimsResponse(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("GenerateText", mock.Anything, mock.Anything, float32(0.7)).
		Return("  Sunny and mild all week.  \n", nil)
	s := newTestService(model)

	summary, err := s.summarizeWeather(context.Background(), []types.Snippet{
		{Title: "Forecast", Content: "Sunny, 18-24C"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunny and mild all week.", summary)
}

func TestGenerateLocalTips_FiltersAndCaps(t *testing.T) {
	response := strings.Join([]string{
		"- Visit museums early in the morning to beat the crowds",
		"short tip", // 9 chars, dropped
		"- Buy a rechargeable transit card at any metro station",
		"- Tipping around 5-10% is appreciated but not required",
		"- Carry some cash, small cafes may not take cards",
		"- Watch for pickpockets on tram 28",
		"- Many shops close for lunch between 1pm and 3pm",
	}, "\n")

	model := new(MockTextGenerator)
	model.On("GenerateText", mock.Anything, mock.Anything, float32(0.7)).Return(response, nil)
	s := newTestService(model)

	tips, err := s.generateLocalTips(context.Background(), "Lisbon", nil)
	require.NoError(t, err)
	assert.Len(t, tips, maxLocalTips)
	for _, tip := range tips {
		assert.Greater(t, len(tip), minLocalTipLen)
	}
	assert.NotContains(t, tips, "short tip")
}
