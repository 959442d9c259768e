package services

import (
	"context"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
)

// OfferService ведёт предложения перевозчиков по заявкам.
type OfferService struct {
	Store repository.Store
}

// NewOfferService создает новый экземпляр OfferService.
func NewOfferService(store repository.Store) *OfferService {
	return &OfferService{Store: store}
}

// CreateOffer создает предложение по открытой заявке.
// Строка заявки блокируется первой, как и при принятии предложения,
// поэтому предложение не может появиться у уже принятой заявки.
func (s *OfferService) CreateOffer(ctx context.Context, offerReq models.OfferRequest) (*models.Offer, error) {
	if offerReq.PricePerKmPerTon == nil {
		return nil, models.NewValidationError("offered price per km per ton is required")
	}
	price := *offerReq.PricePerKmPerTon
	if !IsMonetary(price) {
		return nil, models.NewValidationError("offered price per km per ton must have at most 2 decimal places")
	}

	var created *models.Offer
	err := s.Store.ExecTx(ctx, func(q repository.Querier) error {
		bid, err := q.LockBid(ctx, offerReq.BidID, repository.ForShare)
		if err != nil {
			return translate(err, "bid not found")
		}
		if bid.Status != models.OpenBid {
			return models.NewConflictError("cannot offer on a %s bid", bid.Status)
		}

		if _, err = q.GetTransporter(ctx, offerReq.TransporterID); err != nil {
			return translate(err, "transporter not found")
		}

		if !MeetsBasePrice(price, bid.BasePrice) {
			return models.NewValidationError(
				"offered price per km per ton (₹%s) cannot be less than the base ₹%s",
				price.StringFixed(monetaryPrecision), bid.BasePrice.StringFixed(monetaryPrecision))
		}

		created, err = q.CreateOffer(ctx, models.Offer{
			BidID:            bid.ID,
			TransporterID:    offerReq.TransporterID,
			PricePerKmPerTon: price,
			OfferedPrice:     OfferTotal(bid.DistanceKm, price, bid.QuantityTons),
			Remarks:          offerReq.Remarks,
		})
		return translate(err, "")
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return created, nil
}

// GetOffer возвращает предложение с заявкой и перевозчиком.
func (s *OfferService) GetOffer(ctx context.Context, offerId string) (*models.OfferView, error) {
	offer, err := s.Store.GetOfferView(ctx, offerId)
	if err != nil {
		return nil, translate(err, "offer not found")
	}
	return offer, nil
}

// ListOffers возвращает все предложения.
func (s *OfferService) ListOffers(ctx context.Context) ([]models.OfferView, error) {
	offers, err := s.Store.ListOffers(ctx)
	if err != nil {
		return nil, translate(err, "")
	}
	return offers, nil
}

// DeleteOffer удаляет предложение, если оно не принято.
func (s *OfferService) DeleteOffer(ctx context.Context, offerId string) error {
	offer, err := s.Store.GetOffer(ctx, offerId)
	if err != nil {
		return translate(err, "offer not found")
	}

	err = s.Store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.LockBid(ctx, offer.BidID, repository.ForUpdate); err != nil {
			return translate(err, "bid not found")
		}
		// статус перечитывается под блокировкой заявки
		current, err := q.GetOffer(ctx, offerId)
		if err != nil {
			return translate(err, "offer not found")
		}
		if current.Status == models.AcceptedOffer {
			return models.NewConflictError("accepted offer cannot be deleted")
		}
		return translate(q.DeleteOffer(ctx, offerId), "offer not found")
	})
	return translate(err, "")
}
