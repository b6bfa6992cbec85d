package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-stylist/internal/domain/weather"
)

func TestRecommendBands(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		styles []string
	}{
		{"extreme cold", -5, []string{"Winter Essential", "Urban Winter", "Classic Cold Weather"}},
		{"cold", 5, []string{"Casual Cool", "Modern Edge", "Timeless Chic"}},
		{"mild cool", 14, []string{"Smart Casual", "Relaxed Comfort", "Active Ready"}},
		{"comfortable", 21, []string{"Everyday Casual", "Business Casual", "Streetwear Vibe"}},
		{"warm", 27, []string{"Summer Breeze", "Beach Ready", "Resort Casual"}},
		{"hot", 33, []string{"Heat Wave", "Tropical Vibes", "Desert Cool"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(weather.Snapshot{Temperature: tt.temp, FeelsLike: tt.temp, Description: "clear sky"})
			require.Len(t, rec.Variations, 3)
			for i, v := range rec.Variations {
				require.Equal(t, tt.styles[i], v.Style)
				require.GreaterOrEqual(t, len(v.Items), 3)
				require.LessOrEqual(t, len(v.Items), 4)
			}
		})
	}
}

func TestRecommendBandBounds(t *testing.T) {
	require.Equal(t, "Casual Cool", Recommend(weather.Snapshot{Temperature: 0}).Variations[0].Style)
	require.Equal(t, "Smart Casual", Recommend(weather.Snapshot{Temperature: 10}).Variations[0].Style)
	require.Equal(t, "Everyday Casual", Recommend(weather.Snapshot{Temperature: 18}).Variations[0].Style)
	require.Equal(t, "Summer Breeze", Recommend(weather.Snapshot{Temperature: 25}).Variations[0].Style)
	require.Equal(t, "Heat Wave", Recommend(weather.Snapshot{Temperature: 30}).Variations[0].Style)
}

func TestRecommendRain(t *testing.T) {
	rec := Recommend(weather.Snapshot{
		Temperature: 5,
		FeelsLike:   3,
		Condition:   "Rain",
		Description: "light rain",
		WindSpeed:   3,
		Humidity:    50,
	})

	require.Contains(t, rec.Note, "☔ Rain expected!")
	require.NotContains(t, rec.Note, "❄️")
	require.NotContains(t, rec.Note, "💨")
	for _, v := range rec.Variations {
		last := v.Items[len(v.Items)-1]
		require.Equal(t, "Umbrella", last.Name)
	}
	require.Equal(t, "For 5°C (feels like 3°C) with light rain", rec.Summary)
}

func TestRecommendSnowAppendsGearToEveryVariation(t *testing.T) {
	rec := Recommend(weather.Snapshot{Temperature: -3, FeelsLike: -8, Condition: "Snow", Description: "heavy snow"})
	require.Contains(t, rec.Note, "❄️ Snowy weather!")
	for _, v := range rec.Variations {
		require.Equal(t, "Snow Gear", v.Items[len(v.Items)-1].Name)
	}
}

func TestRecommendHighHumidity(t *testing.T) {
	rec := Recommend(weather.Snapshot{
		Temperature: 32,
		FeelsLike:   35,
		Condition:   "Clear",
		Description: "clear",
		WindSpeed:   2,
		Humidity:    85,
	})

	require.Contains(t, rec.Note, "🌡️ High humidity")
	require.NotContains(t, rec.Note, "☔")
	require.NotContains(t, rec.Note, "❄️")
	require.NotContains(t, rec.Note, "💨")
}

func TestRecommendHumidityRequiresWarmth(t *testing.T) {
	rec := Recommend(weather.Snapshot{Temperature: 15, Humidity: 90, Description: "mist"})
	require.NotContains(t, rec.Note, "🌡️")
}

func TestRecommendWindyNote(t *testing.T) {
	rec := Recommend(weather.Snapshot{Temperature: 12, WindSpeed: 9.5, Description: "clear sky"})
	require.Contains(t, rec.Note, "💨 Windy conditions!")
}

func TestRecommendIdempotent(t *testing.T) {
	snap := weather.Snapshot{Temperature: 5, FeelsLike: 3, Condition: "Rain", Description: "light rain", WindSpeed: 3, Humidity: 50}
	first := Recommend(snap)
	second := Recommend(snap)
	require.Equal(t, first, second)
}

func TestRecommendDoesNotMutateTable(t *testing.T) {
	base := len(variationTable[bandCold][0].Items)
	_ = Recommend(weather.Snapshot{Temperature: 5, Description: "light rain"})
	_ = Recommend(weather.Snapshot{Temperature: 5, Description: "light rain"})
	require.Len(t, variationTable[bandCold][0].Items, base)
}
