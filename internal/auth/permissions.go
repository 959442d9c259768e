package auth

import "slices"

// Permission - операция, доступ к которой проверяется на границе сервиса.
type Permission string

const (
	ViewBids            Permission = "bids:view"
	CreateBid           Permission = "bids:create"
	CloseBid            Permission = "bids:close"
	AcceptOffer         Permission = "bids:accept-offer"
	ViewOffers          Permission = "offers:view"
	CreateOffer         Permission = "offers:create"
	DeleteOffer         Permission = "offers:delete"
	ViewDeals           Permission = "deals:view"
	LogDeal             Permission = "deals:log"
	ViewTransporters    Permission = "transporters:view"
	ManageTransporters  Permission = "transporters:manage"
	ViewTransporterHist Permission = "transporters:history"
)

// permissionTable - единственное место, где роли сопоставляются операциям.
var permissionTable = map[Permission][]Role{
	ViewBids:            {Admin, Staff, Shipper},
	CreateBid:           {Admin, Staff, Shipper},
	CloseBid:            {Admin, Shipper},
	AcceptOffer:         {Admin, Shipper},
	ViewOffers:          {Admin, Staff},
	CreateOffer:         {Admin, Staff},
	DeleteOffer:         {Admin, Staff},
	ViewDeals:           {Admin, Staff},
	LogDeal:             {Admin, Staff},
	ViewTransporters:    {Admin, Staff},
	ManageTransporters:  {Admin},
	ViewTransporterHist: {Admin, Staff},
}

// Allowed сообщает, разрешена ли операция роли. Неизвестная операция запрещена.
func Allowed(role Role, perm Permission) bool {
	return slices.Contains(permissionTable[perm], role)
}
