package services

import (
	"context"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/utils"
)

// AcceptanceCoordinator - единственный путь перевода заявки в accepted.
type AcceptanceCoordinator struct {
	Store repository.Store
}

// NewAcceptanceCoordinator создает новый экземпляр AcceptanceCoordinator.
func NewAcceptanceCoordinator(store repository.Store) *AcceptanceCoordinator {
	return &AcceptanceCoordinator{Store: store}
}

// AcceptOffer принимает предложение: одна транзакция под блокировкой строки заявки
// переводит предложение в accepted, закрывает остальные, закрывает заявку как accepted
// и записывает сделку со снимком груза. При любой ошибке ничего не меняется.
func (c *AcceptanceCoordinator) AcceptOffer(ctx context.Context, bidId, offerId, actorId string) (*models.Deal, error) {
	var deal *models.Deal
	err := c.Store.ExecTx(ctx, func(q repository.Querier) error {
		bid, err := q.LockBid(ctx, bidId, repository.ForUpdate)
		if err != nil {
			return translate(err, "bid not found")
		}
		if !utils.CanTransitionBid(bid.Status, models.AcceptedBid) {
			return models.NewConflictError("bid is not open (current status: %s)", bid.Status)
		}

		offer, err := q.GetOffer(ctx, offerId)
		if err != nil {
			if models.IsKind(translate(err, "invalid offer"), models.NotFoundKind) {
				return models.NewValidationError("invalid offer")
			}
			return translate(err, "")
		}
		if offer.BidID != bid.ID {
			return models.NewValidationError("invalid offer: it belongs to another bid")
		}
		if !utils.CanTransitionOffer(offer.Status, models.AcceptedOffer) {
			return models.NewConflictError("offer is not open (current status: %s)", offer.Status)
		}

		if err = q.UpdateOfferStatus(ctx, offer.ID, models.AcceptedOffer); err != nil {
			return translate(err, "")
		}
		if _, err = q.CloseOffersByBid(ctx, bid.ID, offer.ID, []models.OfferStatus{models.OpenOffer}); err != nil {
			return translate(err, "")
		}
		if err = q.UpdateBidStatus(ctx, bid.ID, models.AcceptedBid); err != nil {
			return translate(err, "")
		}

		deal, err = q.CreateDeal(ctx, models.Deal{
			BidID:            &bid.ID,
			TransporterID:    offer.TransporterID,
			CreatedBy:        actorId,
			DealAmount:       offer.OfferedPrice,
			MaterialType:     bid.MaterialType,
			QuantityTons:     bid.QuantityTons,
			PickupLocation:   bid.PickupLocation,
			DeliveryLocation: bid.DeliveryLocation,
			DistanceKm:       bid.DistanceKm,
		})
		return translate(err, "")
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return deal, nil
}
