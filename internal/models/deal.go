package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal - неизменяемая запись о состоявшейся перевозке.
// Поля груза копируются в момент создания, а не ссылаются на заявку.
type Deal struct {
	ID               string          `json:"id"`
	BidID            *string         `json:"bid_id"`
	TransporterID    string          `json:"transporter_id"`
	CreatedBy        string          `json:"created_by"`
	DealAmount       decimal.Decimal `json:"deal_amount"`
	MaterialType     string          `json:"material_type"`
	QuantityTons     int             `json:"quantity_tons"`
	PickupLocation   string          `json:"pickup_location"`
	DeliveryLocation string          `json:"delivery_location"`
	DistanceKm       float64         `json:"distance_km"`
	DealDate         string          `json:"deal_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

// DealRequest представляет тело запроса на ручную регистрацию сделки.
type DealRequest struct {
	BidID            *string         `json:"bid_id" validate:"omitempty,min=1"`
	TransporterID    string          `json:"transporter_id" validate:"required"`
	DealAmount       decimal.Decimal `json:"deal_amount"`
	MaterialType     string          `json:"material_type" validate:"required"`
	QuantityTons     int             `json:"quantity_tons" validate:"required,gt=0"`
	PickupLocation   string          `json:"pickup_location" validate:"required"`
	DeliveryLocation string          `json:"delivery_location" validate:"required"`
	DistanceKm       float64         `json:"distance_km" validate:"required,gt=0"`
	DealDate         *string         `json:"deal_date" validate:"omitempty,datetime=2006-01-02"`
}

// DealView - сделка с проекциями заявки, перевозчика и автора.
type DealView struct {
	Deal
	Bid         *BidSummary         `json:"bid"`
	Transporter *TransporterSummary `json:"transporter"`
	User        *UserSummary        `json:"user"`
}
