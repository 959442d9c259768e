package services

import (
	"context"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestTransporterRegistry(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.transporters.CreateTransporter(ctx, models.TransporterRequest{})
	checkKind(t, err, models.ValidationKind)
	_, err = f.transporters.CreateTransporter(ctx, models.TransporterRequest{Name: ptr("   ")})
	checkKind(t, err, models.ValidationKind)

	verma := f.transporter(t, "Verma Roadways")
	sharma, err := f.transporters.CreateTransporter(ctx, models.TransporterRequest{
		Name:          ptr("Sharma Logistics"),
		ContactNumber: ptr("+91 98200 00000"),
		CapacityTons:  ptr(30),
	})
	assert.NoError(t, err)
	check.Equal(t, models.ActiveTransporter, sharma.Status)

	list, err := f.transporters.ListTransporters(ctx)
	assert.NoError(t, err)
	if check.Equal(t, 2, len(list)) {
		check.Equal(t, sharma.ID, list[0].ID)
		check.Equal(t, verma.ID, list[1].ID)
	}

	count, err := f.transporters.CountTransporters(ctx)
	assert.NoError(t, err)
	check.Equal(t, 2, count)

	inactive := models.InactiveTransporter
	updated, err := f.transporters.UpdateTransporter(ctx, sharma.ID, models.TransporterRequest{
		VehicleType: ptr("trailer"),
		Status:      &inactive,
	})
	assert.NoError(t, err)
	check.Equal(t, "Sharma Logistics", updated.Name)
	check.Equal(t, "+91 98200 00000", *updated.ContactNumber)
	check.Equal(t, "trailer", *updated.VehicleType)
	check.Equal(t, models.InactiveTransporter, updated.Status)

	_, err = f.transporters.UpdateTransporter(ctx, sharma.ID, models.TransporterRequest{Name: ptr("")})
	checkKind(t, err, models.ValidationKind)
	_, err = f.transporters.UpdateTransporter(ctx, "missing", models.TransporterRequest{Name: ptr("X")})
	checkKind(t, err, models.NotFoundKind)

	_, err = f.transporters.GetTransporter(ctx, "missing")
	checkKind(t, err, models.NotFoundKind)
}

func TestDeleteTransporter(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	idle := f.transporter(t, "Idle Carriers")
	busy := f.transporter(t, "Busy Carriers")
	bid := f.bid(t, 10, 100)
	f.offer(t, bid.ID, busy.ID, "5")

	assert.NoError(t, f.transporters.DeleteTransporter(ctx, idle.ID))
	_, err := f.transporters.GetTransporter(ctx, idle.ID)
	checkKind(t, err, models.NotFoundKind)

	err = f.transporters.DeleteTransporter(ctx, busy.ID)
	checkKind(t, err, models.ConflictKind)
	_, err = f.transporters.GetTransporter(ctx, busy.ID)
	check.NoError(t, err)

	err = f.transporters.DeleteTransporter(ctx, "missing")
	checkKind(t, err, models.NotFoundKind)
}

func TestTransporterHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tr := f.transporter(t, "Sharma Logistics")
	bid := f.bid(t, 10, 100)
	offer := f.offer(t, bid.ID, tr.ID, "5")
	_, err := f.acceptance.AcceptOffer(ctx, bid.ID, offer.ID, "shipper-1")
	assert.NoError(t, err)

	req := dealRequest(nil, tr.ID, "900")
	req.DealDate = ptr("2020-01-01")
	_, err = f.deals.LogDeal(ctx, req, "staff-1")
	assert.NoError(t, err)

	history, err := f.transporters.TransporterHistory(ctx, tr.ID)
	assert.NoError(t, err)
	check.Equal(t, tr.ID, history.Transporter.ID)
	check.Equal(t, "Sharma Logistics", history.Transporter.Name)
	if check.Equal(t, 1, len(history.Offers)) {
		check.Equal(t, offer.ID, history.Offers[0].ID)
		check.Nil(t, history.Offers[0].Transporter)
		check.NotNil(t, history.Offers[0].Bid)
	}
	if check.Equal(t, 2, len(history.Deals)) {
		// сделки упорядочены по дате сделки, старая ручная сделка последняя
		check.Equal(t, "2020-01-01", history.Deals[1].DealDate)
	}

	_, err = f.transporters.TransporterHistory(ctx, "missing")
	checkKind(t, err, models.NotFoundKind)
}
