package services

import (
	"context"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPricingWindow - сколько последних сделок учитывается при расчёте базовой цены.
	DefaultPricingWindow = 100

	monetaryPrecision int32 = 2  // копейки (пайсы): 0.01
	rateScale         int32 = 16 // точность промежуточных ставок
)

// DealHistory - источник истории сделок для расчёта цены.
type DealHistory interface {
	ListRecentDeals(ctx context.Context, limit int) ([]models.Deal, error)
}

// PricingEngine рассчитывает рекомендуемую базовую ставку за км на тонну.
type PricingEngine struct {
	window int
}

// NewPricingEngine создает новый экземпляр PricingEngine.
func NewPricingEngine(window int) *PricingEngine {
	if window <= 0 {
		window = DefaultPricingWindow
	}
	return &PricingEngine{window: window}
}

// SuggestBasePrice возвращает среднюю ставку по последним сделкам, округлённую до 2 знаков.
// Маршрут пока не учитывается: pickup и delivery приняты на будущее.
// Без подходящей истории возвращается 0.
func (p *PricingEngine) SuggestBasePrice(ctx context.Context, deals DealHistory, quantityTons int, pickup, delivery string, distanceKm float64) (decimal.Decimal, error) {
	recent, err := deals.ListRecentDeals(ctx, p.window)
	if err != nil {
		return decimal.Zero, translate(err, "")
	}
	return AverageRate(recent), nil
}

// AverageRate - среднее арифметическое ставок deal_amount / (quantity * distance).
// Сделки с нулевым количеством или расстоянием пропускаются.
func AverageRate(deals []models.Deal) decimal.Decimal {
	total := decimal.Zero
	count := 0
	for _, deal := range deals {
		if deal.QuantityTons <= 0 || deal.DistanceKm <= 0 {
			continue
		}
		units := decimal.NewFromInt(int64(deal.QuantityTons)).Mul(decimal.NewFromFloat(deal.DistanceKm))
		total = total.Add(deal.DealAmount.DivRound(units, rateScale))
		count++
	}

	if count == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), rateScale).Round(monetaryPrecision)
}

// OfferTotal - полная стоимость предложения: distance * price * quantity, округлённая до 2 знаков.
func OfferTotal(distanceKm float64, pricePerKmPerTon decimal.Decimal, quantityTons int) decimal.Decimal {
	return decimal.NewFromFloat(distanceKm).
		Mul(pricePerKmPerTon).
		Mul(decimal.NewFromInt(int64(quantityTons))).
		Round(monetaryPrecision)
}

// MeetsBasePrice возвращает true, если предложенная ставка не ниже базовой.
func MeetsBasePrice(price, basePrice decimal.Decimal) bool {
	return price.GreaterThanOrEqual(basePrice)
}

// IsMonetary проверяет, что сумма задана не точнее чем до 2 знаков после запятой.
func IsMonetary(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(monetaryPrecision))
}
