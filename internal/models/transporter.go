package models

import "time"

// TransporterStatus - статус перевозчика.
type TransporterStatus string

const (
	ActiveTransporter   TransporterStatus = "active"
	InactiveTransporter TransporterStatus = "inactive"
)

// Transporter представляет перевозчика.
type Transporter struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ContactNumber *string           `json:"contact_number"`
	VehicleType   *string           `json:"vehicle_type"`
	CapacityTons  *int              `json:"capacity_tons"`
	Status        TransporterStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TransporterRequest используется и для создания, и для частичного изменения перевозчика.
type TransporterRequest struct {
	Name          *string            `json:"name" validate:"omitempty,min=1"`
	ContactNumber *string            `json:"contact_number"`
	VehicleType   *string            `json:"vehicle_type"`
	CapacityTons  *int               `json:"capacity_tons" validate:"omitempty,gte=0"`
	Status        *TransporterStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

// TransporterSummary - краткая проекция перевозчика.
type TransporterSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransporterHistory - история предложений и сделок перевозчика.
type TransporterHistory struct {
	Transporter TransporterSummary `json:"transporter"`
	Offers      []OfferView        `json:"offers"`
	Deals       []DealView         `json:"deals"`
}

// UserSummary - проекция пользователя, создавшего сделку.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
