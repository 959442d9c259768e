package services

import (
	"context"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func dealRequest(bidId *string, transporterId, amount string) models.DealRequest {
	return models.DealRequest{
		BidID:            bidId,
		TransporterID:    transporterId,
		DealAmount:       decimal.RequireFromString(amount),
		MaterialType:     "coal",
		QuantityTons:     20,
		PickupLocation:   "Dhanbad",
		DeliveryLocation: "Kolkata",
		DistanceKm:       260,
	}
}

func TestLogDeal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tr := f.transporter(t, "Sharma Logistics")

	view, err := f.deals.LogDeal(ctx, dealRequest(nil, tr.ID, "52000"), "staff-1")
	assert.NoError(t, err)
	check.Nil(t, view.BidID)
	check.Nil(t, view.Bid)
	check.Equal(t, "Sharma Logistics", view.Transporter.Name)
	if check.NotNil(t, view.User) {
		check.Equal(t, "staff@example.com", view.User.Email)
	}
	check.Equal(t, 10, len(view.DealDate))

	req := dealRequest(nil, tr.ID, "1000")
	req.DealDate = ptr("2024-03-15")
	view, err = f.deals.LogDeal(ctx, req, "staff-1")
	assert.NoError(t, err)
	check.Equal(t, "2024-03-15", view.DealDate)

	deals, err := f.deals.ListDeals(ctx)
	assert.NoError(t, err)
	if check.Equal(t, 2, len(deals)) {
		check.Equal(t, view.ID, deals[0].ID)
	}
}

func TestLogDealRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tr := f.transporter(t, "Sharma Logistics")

	zeroQty := dealRequest(nil, tr.ID, "100")
	zeroQty.QuantityTons = 0

	tests := []struct {
		name string
		req  models.DealRequest
		kind models.ErrorKind
	}{
		{"zero amount", dealRequest(nil, tr.ID, "0"), models.ValidationKind},
		{"negative amount", dealRequest(nil, tr.ID, "-10"), models.ValidationKind},
		{"sub-paise amount", dealRequest(nil, tr.ID, "10.005"), models.ValidationKind},
		{"zero quantity", zeroQty, models.ValidationKind},
		{"missing bid", dealRequest(ptr("missing"), tr.ID, "100"), models.NotFoundKind},
		{"missing transporter", dealRequest(nil, "missing", "100"), models.NotFoundKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.deals.LogDeal(ctx, tt.req, "staff-1")
			checkKind(t, err, tt.kind)
		})
	}

	deals, err := f.deals.ListDeals(ctx)
	assert.NoError(t, err)
	check.Equal(t, 0, len(deals))
}

func TestLogDealClosesBid(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tr := f.transporter(t, "Sharma Logistics")

	t.Run("open bid", func(t *testing.T) {
		bid := f.bid(t, 10, 100)
		offer := f.offer(t, bid.ID, tr.ID, "5")

		view, err := f.deals.LogDeal(ctx, dealRequest(&bid.ID, tr.ID, "4800"), "staff-1")
		assert.NoError(t, err)
		if check.NotNil(t, view.Bid) {
			check.Equal(t, models.ClosedBid, view.Bid.Status)
		}
		check.Equal(t, models.ClosedBid, bidStatus(t, f.store, bid.ID))
		check.Equal(t, models.ClosedOffer, offerStatus(t, f.store, offer.ID))
		checkBidInvariants(t, f.store, bid.ID)
	})

	t.Run("accepted bid", func(t *testing.T) {
		bid := f.bid(t, 10, 100)
		offer := f.offer(t, bid.ID, tr.ID, "5")
		_, err := f.acceptance.AcceptOffer(ctx, bid.ID, offer.ID, "shipper-1")
		assert.NoError(t, err)

		_, err = f.deals.LogDeal(ctx, dealRequest(&bid.ID, tr.ID, "4800"), "staff-1")
		assert.NoError(t, err)
		check.Equal(t, models.ClosedBid, bidStatus(t, f.store, bid.ID))
		check.Equal(t, models.ClosedOffer, offerStatus(t, f.store, offer.ID))

		deals, err := f.store.ListDealsByBid(ctx, bid.ID)
		assert.NoError(t, err)
		check.Equal(t, 2, len(deals))
	})
}
