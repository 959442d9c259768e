package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferStatus - статус предложения перевозчика.
type OfferStatus string

const (
	OpenOffer     OfferStatus = "open"
	AcceptedOffer OfferStatus = "accepted"
	ClosedOffer   OfferStatus = "closed"
)

// Offer представляет ценовое предложение перевозчика по заявке.
type Offer struct {
	ID               string          `json:"id"`
	BidID            string          `json:"bid_id"`
	TransporterID    string          `json:"transporter_id"`
	PricePerKmPerTon decimal.Decimal `json:"offered_price_per_km_per_ton"`
	OfferedPrice     decimal.Decimal `json:"offered_price"`
	Remarks          *string         `json:"remarks"`
	Status           OfferStatus     `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OfferRequest представляет тело запроса на создание предложения.
type OfferRequest struct {
	BidID            string           `json:"bid_id" validate:"required"`
	TransporterID    string           `json:"transporter_id" validate:"required"`
	PricePerKmPerTon *decimal.Decimal `json:"offered_price_per_km_per_ton" validate:"required"`
	Remarks          *string          `json:"remarks"`
}

// OfferView - предложение с проекциями заявки и перевозчика.
type OfferView struct {
	Offer
	Bid         *BidSummary         `json:"bid,omitempty"`
	Transporter *TransporterSummary `json:"transporter,omitempty"`
}
