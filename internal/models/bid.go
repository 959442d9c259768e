package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BidStatus - статус заявки на перевозку.
type BidStatus string

const (
	OpenBid     BidStatus = "open"     // Заявка открыта для предложений
	AcceptedBid BidStatus = "accepted" // Принято одно из предложений
	ClosedBid   BidStatus = "closed"   // Заявка закрыта без принятого предложения
)

// BidStatuses перечисляет все допустимые статусы заявки.
var BidStatuses = []BidStatus{OpenBid, AcceptedBid, ClosedBid}

// Bid представляет заявку грузоотправителя на перевозку груза.
type Bid struct {
	ID                      string          `json:"id"`
	MaterialType            string          `json:"material_type"`
	QuantityTons            int             `json:"quantity_tons"`
	PickupLocation          string          `json:"pickup_location"`
	DeliveryLocation        string          `json:"delivery_location"`
	Deadline                string          `json:"deadline"`
	TransporterRequirements *string         `json:"transporter_requirements"`
	DistanceKm              float64         `json:"distance_km"`
	BasePrice               decimal.Decimal `json:"base_price_rupee_per_km_per_ton"`
	Status                  BidStatus       `json:"status"`
	CreatedBy               string          `json:"created_by"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// BidRequest представляет тело запроса на создание заявки.
// Расстояние проверяется сервисом, остальные поля проверяются на границе.
type BidRequest struct {
	MaterialType            string   `json:"material_type" validate:"required"`
	QuantityTons            int      `json:"quantity_tons" validate:"required,gt=0"`
	PickupLocation          string   `json:"pickup_location" validate:"required"`
	DeliveryLocation        string   `json:"delivery_location" validate:"required"`
	Deadline                string   `json:"deadline" validate:"required,datetime=2006-01-02"`
	TransporterRequirements *string  `json:"transporter_requirements"`
	DistanceKm              *float64 `json:"distance_km"`
}

// BidSummary - сокращённая проекция заявки для вложения в предложения и сделки.
type BidSummary struct {
	ID               string    `json:"id"`
	MaterialType     string    `json:"material_type"`
	QuantityTons     int       `json:"quantity_tons"`
	PickupLocation   string    `json:"pickup_location"`
	DeliveryLocation string    `json:"delivery_location"`
	Deadline         string    `json:"deadline"`
	DistanceKm       float64   `json:"distance_km"`
	Status           BidStatus `json:"status"`
}

// BidDetails - заявка вместе с предложениями и итоговой сделкой.
type BidDetails struct {
	Bid
	Offers []OfferView `json:"offers"`
	Deal   *Deal       `json:"deal"`
}

// Summary возвращает проекцию заявки.
func (b Bid) Summary() *BidSummary {
	return &BidSummary{
		ID:               b.ID,
		MaterialType:     b.MaterialType,
		QuantityTons:     b.QuantityTons,
		PickupLocation:   b.PickupLocation,
		DeliveryLocation: b.DeliveryLocation,
		Deadline:         b.Deadline,
		DistanceKm:       b.DistanceKm,
		Status:           b.Status,
	}
}
