package services

import (
	"context"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/utils"
)

// BidService управляет жизненным циклом заявок.
type BidService struct {
	Store   repository.Store
	Pricing *PricingEngine
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(store repository.Store, pricing *PricingEngine) *BidService {
	return &BidService{Store: store, Pricing: pricing}
}

// CreateBid создает новую заявку с рекомендованной базовой ценой.
func (s *BidService) CreateBid(ctx context.Context, bidReq models.BidRequest, creatorId string) (*models.Bid, error) {
	if bidReq.DistanceKm == nil || *bidReq.DistanceKm <= 0 {
		return nil, models.NewValidationError("distance (km) is required and must be > 0")
	}

	basePrice, err := s.Pricing.SuggestBasePrice(ctx, s.Store, bidReq.QuantityTons, bidReq.PickupLocation, bidReq.DeliveryLocation, *bidReq.DistanceKm)
	if err != nil {
		return nil, err
	}

	bid, err := s.Store.CreateBid(ctx, models.Bid{
		MaterialType:            bidReq.MaterialType,
		QuantityTons:            bidReq.QuantityTons,
		PickupLocation:          bidReq.PickupLocation,
		DeliveryLocation:        bidReq.DeliveryLocation,
		Deadline:                bidReq.Deadline,
		TransporterRequirements: bidReq.TransporterRequirements,
		DistanceKm:              *bidReq.DistanceKm,
		BasePrice:               basePrice,
		CreatedBy:               creatorId,
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return bid, nil
}

// GetBid возвращает заявку с предложениями и последней сделкой.
func (s *BidService) GetBid(ctx context.Context, bidId string) (*models.BidDetails, error) {
	bid, err := s.Store.GetBid(ctx, bidId)
	if err != nil {
		return nil, translate(err, "bid not found")
	}

	offers, err := s.Store.ListOffersByBid(ctx, bidId)
	if err != nil {
		return nil, translate(err, "")
	}
	for i := range offers {
		// заявка уже в ответе, вложенная проекция не нужна
		offers[i].Bid = nil
	}

	deals, err := s.Store.ListDealsByBid(ctx, bidId)
	if err != nil {
		return nil, translate(err, "")
	}

	details := &models.BidDetails{Bid: *bid, Offers: offers}
	if len(deals) > 0 {
		details.Deal = &deals[0]
	}
	return details, nil
}

// ListBids возвращает заявки, начиная с самых новых.
func (s *BidService) ListBids(ctx context.Context, limitStr, offsetStr, statusStr string) ([]models.Bid, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError("%s", err.Error())
	}

	statuses, err := utils.ParseBidStatus(statusStr)
	if err != nil {
		return nil, models.NewValidationError("%s", err.Error())
	}

	bids, err := s.Store.ListBids(ctx, repository.BidFilter{Statuses: statuses, Limit: limit, Offset: offset})
	if err != nil {
		return nil, translate(err, "")
	}
	return bids, nil
}

// CloseBid закрывает открытую заявку и все её открытые предложения.
func (s *BidService) CloseBid(ctx context.Context, bidId string) (*models.Bid, error) {
	var closed *models.Bid
	err := s.Store.ExecTx(ctx, func(q repository.Querier) error {
		bid, err := q.LockBid(ctx, bidId, repository.ForUpdate)
		if err != nil {
			return translate(err, "bid not found")
		}
		if !utils.CanTransitionBid(bid.Status, models.ClosedBid) {
			return models.NewConflictError("bid is not open (current status: %s)", bid.Status)
		}

		if err = q.UpdateBidStatus(ctx, bidId, models.ClosedBid); err != nil {
			return translate(err, "bid not found")
		}
		if _, err = q.CloseOffersByBid(ctx, bidId, "", []models.OfferStatus{models.OpenOffer}); err != nil {
			return translate(err, "")
		}

		bid.Status = models.ClosedBid
		closed = bid
		return nil
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return closed, nil
}
