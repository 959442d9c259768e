package services

import (
	"context"
	"errors"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

type fixture struct {
	store        *repository.MemoryStore
	bids         *BidService
	offers       *OfferService
	acceptance   *AcceptanceCoordinator
	deals        *DealService
	transporters *TransporterService
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	store.AddUser("shipper-1", "shipper@example.com")
	store.AddUser("staff-1", "staff@example.com")
	return &fixture{
		store:        store,
		bids:         NewBidService(store, NewPricingEngine(DefaultPricingWindow)),
		offers:       NewOfferService(store),
		acceptance:   NewAcceptanceCoordinator(store),
		deals:        NewDealService(store),
		transporters: NewTransporterService(store),
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) transporter(t *testing.T, name string) *models.Transporter {
	t.Helper()
	tr, err := f.transporters.CreateTransporter(context.Background(), models.TransporterRequest{Name: ptr(name)})
	assert.NoError(t, err)
	return tr
}

func (f *fixture) bid(t *testing.T, qty int, distance float64) *models.Bid {
	t.Helper()
	bid, err := f.bids.CreateBid(context.Background(), models.BidRequest{
		MaterialType:     "steel coils",
		QuantityTons:     qty,
		PickupLocation:   "Mumbai",
		DeliveryLocation: "Pune",
		Deadline:         "2026-12-01",
		DistanceKm:       ptr(distance),
	}, "shipper-1")
	assert.NoError(t, err)
	return bid
}

func (f *fixture) offer(t *testing.T, bidId, transporterId, price string) *models.Offer {
	t.Helper()
	offer, err := f.offers.CreateOffer(context.Background(), models.OfferRequest{
		BidID:            bidId,
		TransporterID:    transporterId,
		PricePerKmPerTon: ptr(decimal.RequireFromString(price)),
	})
	assert.NoError(t, err)
	return offer
}

// manualDeal регистрирует сделку без заявки, чтобы сформировать историю цен.
func (f *fixture) manualDeal(t *testing.T, transporterId, amount string, qty int, distance float64) {
	t.Helper()
	_, err := f.deals.LogDeal(context.Background(), models.DealRequest{
		TransporterID:    transporterId,
		DealAmount:       decimal.RequireFromString(amount),
		MaterialType:     "cement",
		QuantityTons:     qty,
		PickupLocation:   "Nagpur",
		DeliveryLocation: "Raipur",
		DistanceKm:       distance,
	}, "staff-1")
	assert.NoError(t, err)
}

func checkKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	var resp *models.ErrorResponse
	if check.True(t, errors.As(err, &resp)) {
		check.Equal(t, kind, resp.Kind)
	}
}

func offerStatus(t *testing.T, store repository.Store, offerId string) models.OfferStatus {
	t.Helper()
	offer, err := store.GetOffer(context.Background(), offerId)
	assert.NoError(t, err)
	return offer.Status
}

func bidStatus(t *testing.T, store repository.Store, bidId string) models.BidStatus {
	t.Helper()
	bid, err := store.GetBid(context.Background(), bidId)
	assert.NoError(t, err)
	return bid.Status
}
