package services

import (
	"context"
	"errors"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func deal(amount string, qty int, distance float64) models.Deal {
	return models.Deal{DealAmount: decimal.RequireFromString(amount), QuantityTons: qty, DistanceKm: distance}
}

func TestAverageRate(t *testing.T) {
	tests := []struct {
		name  string
		deals []models.Deal
		want  string
	}{
		{"no history", nil, "0"},
		{"single deal", []models.Deal{deal("1000", 10, 10)}, "10"},
		{"mean of rates", []models.Deal{deal("1000", 10, 10), deal("500", 5, 20)}, "7.5"},
		{"zero quantity skipped", []models.Deal{deal("1000", 10, 10), deal("900", 0, 10)}, "10"},
		{"zero distance skipped", []models.Deal{deal("1000", 10, 10), deal("900", 3, 0)}, "10"},
		{"nothing qualifies", []models.Deal{deal("900", 0, 10)}, "0"},
		{"rounded to paise", []models.Deal{deal("100", 3, 1)}, "33.33"},
		{"rounds half up", []models.Deal{deal("1", 1, 8)}, "0.13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.want, AverageRate(tt.deals).String())
		})
	}
}

func TestOfferTotal(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		price    string
		qty      int
		want     string
	}{
		{"whole numbers", 100, "5", 10, "5000.00"},
		{"fractional distance", 12.5, "3.33", 7, "291.38"},
		{"zero price", 250, "0", 4, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OfferTotal(tt.distance, decimal.RequireFromString(tt.price), tt.qty)
			check.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestMeetsBasePrice(t *testing.T) {
	base := decimal.RequireFromString("5.00")
	check.True(t, MeetsBasePrice(decimal.RequireFromString("5"), base))
	check.True(t, MeetsBasePrice(decimal.RequireFromString("5.01"), base))
	check.False(t, MeetsBasePrice(decimal.RequireFromString("4.99"), base))
	check.False(t, MeetsBasePrice(decimal.RequireFromString("4.999"), base))
	check.True(t, MeetsBasePrice(decimal.Zero, decimal.Zero))
}

func TestIsMonetary(t *testing.T) {
	check.True(t, IsMonetary(decimal.RequireFromString("12")))
	check.True(t, IsMonetary(decimal.RequireFromString("12.3")))
	check.True(t, IsMonetary(decimal.RequireFromString("12.30")))
	check.True(t, IsMonetary(decimal.RequireFromString("12.300")))
	check.False(t, IsMonetary(decimal.RequireFromString("12.305")))
}

type stubHistory struct {
	deals     []models.Deal
	err       error
	lastLimit int
}

func (s *stubHistory) ListRecentDeals(_ context.Context, limit int) ([]models.Deal, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if len(s.deals) > limit {
		return s.deals[:limit], nil
	}
	return s.deals, nil
}

func TestSuggestBasePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("uses configured window", func(t *testing.T) {
		history := &stubHistory{deals: []models.Deal{deal("1000", 10, 10), deal("500", 5, 20)}}
		price, err := NewPricingEngine(1).SuggestBasePrice(ctx, history, 10, "A", "B", 100)
		check.NoError(t, err)
		check.Equal(t, 1, history.lastLimit)
		check.Equal(t, "10.00", price.StringFixed(2))
	})

	t.Run("default window", func(t *testing.T) {
		history := &stubHistory{}
		price, err := NewPricingEngine(0).SuggestBasePrice(ctx, history, 10, "A", "B", 100)
		check.NoError(t, err)
		check.Equal(t, DefaultPricingWindow, history.lastLimit)
		check.True(t, price.IsZero())
	})

	t.Run("route is ignored", func(t *testing.T) {
		history := &stubHistory{deals: []models.Deal{deal("1000", 10, 10)}}
		engine := NewPricingEngine(DefaultPricingWindow)
		a, err := engine.SuggestBasePrice(ctx, history, 1, "Delhi", "Agra", 10)
		check.NoError(t, err)
		b, err := engine.SuggestBasePrice(ctx, history, 99, "Chennai", "Kochi", 700)
		check.NoError(t, err)
		check.True(t, a.Equal(b))
	})

	t.Run("storage failure", func(t *testing.T) {
		history := &stubHistory{err: errors.New("connection refused")}
		_, err := NewPricingEngine(DefaultPricingWindow).SuggestBasePrice(ctx, history, 10, "A", "B", 100)
		checkKind(t, err, models.StorageKind)
	})
}
