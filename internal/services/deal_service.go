package services

import (
	"context"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
)

// DealService - журнал сделок и ручная регистрация сделок.
type DealService struct {
	Store repository.Store
}

// NewDealService создает новый экземпляр DealService.
func NewDealService(store repository.Store) *DealService {
	return &DealService{Store: store}
}

// LogDeal регистрирует сделку, заключённую вне системы предложений.
// Если указана заявка, она и все её предложения принудительно закрываются;
// в отличие от AcceptOffer ни одно предложение не становится accepted.
func (s *DealService) LogDeal(ctx context.Context, dealReq models.DealRequest, actorId string) (*models.DealView, error) {
	if !dealReq.DealAmount.IsPositive() {
		return nil, models.NewValidationError("deal amount must be > 0")
	}
	if !IsMonetary(dealReq.DealAmount) {
		return nil, models.NewValidationError("deal amount must have at most 2 decimal places")
	}
	if dealReq.QuantityTons <= 0 || dealReq.DistanceKm <= 0 {
		return nil, models.NewValidationError("quantity (tons) and distance (km) must be > 0")
	}

	var view *models.DealView
	err := s.Store.ExecTx(ctx, func(q repository.Querier) error {
		if dealReq.BidID != nil {
			if _, err := q.LockBid(ctx, *dealReq.BidID, repository.ForUpdate); err != nil {
				return translate(err, "bid not found")
			}
		}
		if _, err := q.GetTransporter(ctx, dealReq.TransporterID); err != nil {
			return translate(err, "transporter not found")
		}

		deal := models.Deal{
			BidID:            dealReq.BidID,
			TransporterID:    dealReq.TransporterID,
			CreatedBy:        actorId,
			DealAmount:       dealReq.DealAmount,
			MaterialType:     dealReq.MaterialType,
			QuantityTons:     dealReq.QuantityTons,
			PickupLocation:   dealReq.PickupLocation,
			DeliveryLocation: dealReq.DeliveryLocation,
			DistanceKm:       dealReq.DistanceKm,
		}
		if dealReq.DealDate != nil {
			deal.DealDate = *dealReq.DealDate
		}
		created, err := q.CreateDeal(ctx, deal)
		if err != nil {
			return translate(err, "")
		}

		if dealReq.BidID != nil {
			if err = q.UpdateBidStatus(ctx, *dealReq.BidID, models.ClosedBid); err != nil {
				return translate(err, "bid not found")
			}
			allStatuses := []models.OfferStatus{models.OpenOffer, models.AcceptedOffer}
			if _, err = q.CloseOffersByBid(ctx, *dealReq.BidID, "", allStatuses); err != nil {
				return translate(err, "")
			}
		}

		view, err = q.GetDealView(ctx, created.ID)
		return translate(err, "deal not found")
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return view, nil
}

// ListDeals возвращает все сделки, начиная с самых новых.
func (s *DealService) ListDeals(ctx context.Context) ([]models.DealView, error) {
	deals, err := s.Store.ListDeals(ctx)
	if err != nil {
		return nil, translate(err, "")
	}
	return deals, nil
}
