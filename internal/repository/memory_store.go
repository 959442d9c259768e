package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/google/uuid"
)

// memData - содержимое MemoryStore. Порядок вставки хранится отдельно,
// чтобы выдача "сначала новые" не зависела от разрешения часов.
type memData struct {
	bids             map[string]models.Bid
	bidOrder         []string
	offers           map[string]models.Offer
	offerOrder       []string
	deals            map[string]models.Deal
	dealOrder        []string
	transporters     map[string]models.Transporter
	transporterOrder []string
	users            map[string]models.UserSummary
}

func newMemData() *memData {
	return &memData{
		bids:         make(map[string]models.Bid),
		offers:       make(map[string]models.Offer),
		deals:        make(map[string]models.Deal),
		transporters: make(map[string]models.Transporter),
		users:        make(map[string]models.UserSummary),
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		bids:             make(map[string]models.Bid, len(d.bids)),
		bidOrder:         slices.Clone(d.bidOrder),
		offers:           make(map[string]models.Offer, len(d.offers)),
		offerOrder:       slices.Clone(d.offerOrder),
		deals:            make(map[string]models.Deal, len(d.deals)),
		dealOrder:        slices.Clone(d.dealOrder),
		transporters:     make(map[string]models.Transporter, len(d.transporters)),
		transporterOrder: slices.Clone(d.transporterOrder),
		users:            make(map[string]models.UserSummary, len(d.users)),
	}
	for k, v := range d.bids {
		c.bids[k] = v
	}
	for k, v := range d.offers {
		c.offers[k] = v
	}
	for k, v := range d.deals {
		c.deals[k] = v
	}
	for k, v := range d.transporters {
		c.transporters[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

// MemoryStore - реализация Store в памяти процесса.
// Транзакции выполняются строго последовательно под одной блокировкой,
// при ошибке состояние восстанавливается из снимка.
type MemoryStore struct {
	*memQueries
}

// NewMemoryStore создает пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		memQueries: &memQueries{
			mu:   &sync.Mutex{},
			data: newMemData(),
		},
	}
}

// AddUser регистрирует пользователя для проекции автора сделки.
func (s *MemoryStore) AddUser(id, email string) {
	defer s.lock()()
	s.data.users[id] = models.UserSummary{ID: id, Email: email}
}

// ExecTx выполняет fn атомарно относительно всех остальных вызовов хранилища.
func (s *MemoryStore) ExecTx(ctx context.Context, fn func(q Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("repository.ExecTx: %w", err)
	}

	snapshot := s.data.clone()
	tx := &memQueries{data: s.data, inTx: true}
	if err := fn(tx); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

type memQueries struct {
	mu   *sync.Mutex
	data *memData
	inTx bool
}

// lock захватывает блокировку хранилища вне транзакции и возвращает функцию освобождения.
func (q *memQueries) lock() func() {
	if q.inTx {
		return func() {}
	}
	q.mu.Lock()
	return q.mu.Unlock
}

func (q *memQueries) bidSummary(bidId string) *models.BidSummary {
	bid, ok := q.data.bids[bidId]
	if !ok {
		return nil
	}
	return bid.Summary()
}

func (q *memQueries) transporterSummary(transporterId string) *models.TransporterSummary {
	transporter, ok := q.data.transporters[transporterId]
	if !ok {
		return nil
	}
	return &models.TransporterSummary{ID: transporter.ID, Name: transporter.Name}
}

func (q *memQueries) offerView(offer models.Offer) models.OfferView {
	return models.OfferView{
		Offer:       offer,
		Bid:         q.bidSummary(offer.BidID),
		Transporter: q.transporterSummary(offer.TransporterID),
	}
}

func (q *memQueries) dealView(deal models.Deal) models.DealView {
	view := models.DealView{
		Deal:        deal,
		Transporter: q.transporterSummary(deal.TransporterID),
	}
	if deal.BidID != nil {
		view.Bid = q.bidSummary(*deal.BidID)
	}
	if user, ok := q.data.users[deal.CreatedBy]; ok {
		view.User = &user
	}
	return view
}

func (q *memQueries) CreateBid(_ context.Context, bid models.Bid) (*models.Bid, error) {
	defer q.lock()()
	now := time.Now().UTC()
	bid.ID = uuid.New().String()
	bid.Status = models.OpenBid
	bid.CreatedAt = now
	bid.UpdatedAt = now
	q.data.bids[bid.ID] = bid
	q.data.bidOrder = append(q.data.bidOrder, bid.ID)
	return &bid, nil
}

func (q *memQueries) GetBid(_ context.Context, bidId string) (*models.Bid, error) {
	defer q.lock()()
	bid, ok := q.data.bids[bidId]
	if !ok {
		return nil, fmt.Errorf("repository.GetBid: %w", ErrNotFound)
	}
	return &bid, nil
}

// LockBid в памяти не отличается от GetBid: транзакция уже исключительна.
func (q *memQueries) LockBid(ctx context.Context, bidId string, _ LockMode) (*models.Bid, error) {
	return q.GetBid(ctx, bidId)
}

func (q *memQueries) ListBids(_ context.Context, filter BidFilter) ([]models.Bid, error) {
	defer q.lock()()
	bids := make([]models.Bid, 0)
	skipped := 0
	for i := len(q.data.bidOrder) - 1; i >= 0; i-- {
		bid := q.data.bids[q.data.bidOrder[i]]
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, bid.Status) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(bids) >= filter.Limit {
			break
		}
		bids = append(bids, bid)
	}
	return bids, nil
}

func (q *memQueries) UpdateBidStatus(_ context.Context, bidId string, status models.BidStatus) error {
	defer q.lock()()
	bid, ok := q.data.bids[bidId]
	if !ok {
		return fmt.Errorf("repository.UpdateBidStatus: %w", ErrNotFound)
	}
	bid.Status = status
	bid.UpdatedAt = time.Now().UTC()
	q.data.bids[bidId] = bid
	return nil
}

func (q *memQueries) CreateOffer(_ context.Context, offer models.Offer) (*models.Offer, error) {
	defer q.lock()()
	if _, ok := q.data.bids[offer.BidID]; !ok {
		return nil, fmt.Errorf("repository.CreateOffer: unknown bid %s: %w", offer.BidID, ErrInvalid)
	}
	if _, ok := q.data.transporters[offer.TransporterID]; !ok {
		return nil, fmt.Errorf("repository.CreateOffer: unknown transporter %s: %w", offer.TransporterID, ErrInvalid)
	}
	now := time.Now().UTC()
	offer.ID = uuid.New().String()
	offer.Status = models.OpenOffer
	offer.CreatedAt = now
	offer.UpdatedAt = now
	q.data.offers[offer.ID] = offer
	q.data.offerOrder = append(q.data.offerOrder, offer.ID)
	return &offer, nil
}

func (q *memQueries) GetOffer(_ context.Context, offerId string) (*models.Offer, error) {
	defer q.lock()()
	offer, ok := q.data.offers[offerId]
	if !ok {
		return nil, fmt.Errorf("repository.GetOffer: %w", ErrNotFound)
	}
	return &offer, nil
}

func (q *memQueries) GetOfferView(_ context.Context, offerId string) (*models.OfferView, error) {
	defer q.lock()()
	offer, ok := q.data.offers[offerId]
	if !ok {
		return nil, fmt.Errorf("repository.GetOfferView: %w", ErrNotFound)
	}
	view := q.offerView(offer)
	return &view, nil
}

func (q *memQueries) filterOffers(match func(models.Offer) bool) []models.OfferView {
	offers := make([]models.OfferView, 0)
	for i := len(q.data.offerOrder) - 1; i >= 0; i-- {
		offer, ok := q.data.offers[q.data.offerOrder[i]]
		if !ok || !match(offer) {
			continue
		}
		offers = append(offers, q.offerView(offer))
	}
	return offers
}

func (q *memQueries) ListOffers(_ context.Context) ([]models.OfferView, error) {
	defer q.lock()()
	return q.filterOffers(func(models.Offer) bool { return true }), nil
}

func (q *memQueries) ListOffersByBid(_ context.Context, bidId string) ([]models.OfferView, error) {
	defer q.lock()()
	return q.filterOffers(func(o models.Offer) bool { return o.BidID == bidId }), nil
}

func (q *memQueries) ListOffersByTransporter(_ context.Context, transporterId string) ([]models.OfferView, error) {
	defer q.lock()()
	return q.filterOffers(func(o models.Offer) bool { return o.TransporterID == transporterId }), nil
}

func (q *memQueries) UpdateOfferStatus(_ context.Context, offerId string, status models.OfferStatus) error {
	defer q.lock()()
	offer, ok := q.data.offers[offerId]
	if !ok {
		return fmt.Errorf("repository.UpdateOfferStatus: %w", ErrNotFound)
	}
	offer.Status = status
	offer.UpdatedAt = time.Now().UTC()
	q.data.offers[offerId] = offer
	return nil
}

func (q *memQueries) CloseOffersByBid(_ context.Context, bidId, exceptOfferId string, from []models.OfferStatus) (int64, error) {
	defer q.lock()()
	var closed int64
	now := time.Now().UTC()
	for id, offer := range q.data.offers {
		if offer.BidID != bidId || id == exceptOfferId || !slices.Contains(from, offer.Status) {
			continue
		}
		offer.Status = models.ClosedOffer
		offer.UpdatedAt = now
		q.data.offers[id] = offer
		closed++
	}
	return closed, nil
}

func (q *memQueries) DeleteOffer(_ context.Context, offerId string) error {
	defer q.lock()()
	if _, ok := q.data.offers[offerId]; !ok {
		return fmt.Errorf("repository.DeleteOffer: %w", ErrNotFound)
	}
	delete(q.data.offers, offerId)
	q.data.offerOrder = slices.DeleteFunc(q.data.offerOrder, func(id string) bool { return id == offerId })
	return nil
}

func (q *memQueries) CreateDeal(_ context.Context, deal models.Deal) (*models.Deal, error) {
	defer q.lock()()
	if _, ok := q.data.transporters[deal.TransporterID]; !ok {
		return nil, fmt.Errorf("repository.CreateDeal: unknown transporter %s: %w", deal.TransporterID, ErrInvalid)
	}
	deal.ID = uuid.New().String()
	deal.CreatedAt = time.Now().UTC()
	if deal.DealDate == "" {
		deal.DealDate = deal.CreatedAt.Format(time.DateOnly)
	}
	q.data.deals[deal.ID] = deal
	q.data.dealOrder = append(q.data.dealOrder, deal.ID)
	return &deal, nil
}

func (q *memQueries) GetDealView(_ context.Context, dealId string) (*models.DealView, error) {
	defer q.lock()()
	deal, ok := q.data.deals[dealId]
	if !ok {
		return nil, fmt.Errorf("repository.GetDealView: %w", ErrNotFound)
	}
	view := q.dealView(deal)
	return &view, nil
}

func (q *memQueries) ListRecentDeals(_ context.Context, limit int) ([]models.Deal, error) {
	defer q.lock()()
	deals := make([]models.Deal, 0, limit)
	for i := len(q.data.dealOrder) - 1; i >= 0 && len(deals) < limit; i-- {
		deals = append(deals, q.data.deals[q.data.dealOrder[i]])
	}
	return deals, nil
}

func (q *memQueries) ListDeals(_ context.Context) ([]models.DealView, error) {
	defer q.lock()()
	deals := make([]models.DealView, 0, len(q.data.dealOrder))
	for i := len(q.data.dealOrder) - 1; i >= 0; i-- {
		deals = append(deals, q.dealView(q.data.deals[q.data.dealOrder[i]]))
	}
	return deals, nil
}

func (q *memQueries) ListDealsByBid(_ context.Context, bidId string) ([]models.Deal, error) {
	defer q.lock()()
	deals := make([]models.Deal, 0)
	for i := len(q.data.dealOrder) - 1; i >= 0; i-- {
		deal := q.data.deals[q.data.dealOrder[i]]
		if deal.BidID != nil && *deal.BidID == bidId {
			deals = append(deals, deal)
		}
	}
	return deals, nil
}

func (q *memQueries) ListDealsByTransporter(_ context.Context, transporterId string) ([]models.DealView, error) {
	defer q.lock()()
	deals := make([]models.DealView, 0)
	for i := len(q.data.dealOrder) - 1; i >= 0; i-- {
		deal := q.data.deals[q.data.dealOrder[i]]
		if deal.TransporterID == transporterId {
			deals = append(deals, q.dealView(deal))
		}
	}
	slices.SortStableFunc(deals, func(a, b models.DealView) int {
		// даты в формате YYYY-MM-DD сравниваются как строки
		switch {
		case a.DealDate > b.DealDate:
			return -1
		case a.DealDate < b.DealDate:
			return 1
		}
		return 0
	})
	return deals, nil
}

func (q *memQueries) CreateTransporter(_ context.Context, transporter models.Transporter) (*models.Transporter, error) {
	defer q.lock()()
	now := time.Now().UTC()
	transporter.ID = uuid.New().String()
	transporter.CreatedAt = now
	transporter.UpdatedAt = now
	if transporter.Status == "" {
		transporter.Status = models.ActiveTransporter
	}
	q.data.transporters[transporter.ID] = transporter
	q.data.transporterOrder = append(q.data.transporterOrder, transporter.ID)
	return &transporter, nil
}

func (q *memQueries) GetTransporter(_ context.Context, transporterId string) (*models.Transporter, error) {
	defer q.lock()()
	transporter, ok := q.data.transporters[transporterId]
	if !ok {
		return nil, fmt.Errorf("repository.GetTransporter: %w", ErrNotFound)
	}
	return &transporter, nil
}

func (q *memQueries) ListTransporters(_ context.Context) ([]models.Transporter, error) {
	defer q.lock()()
	transporters := make([]models.Transporter, 0, len(q.data.transporters))
	for _, id := range q.data.transporterOrder {
		transporters = append(transporters, q.data.transporters[id])
	}
	slices.SortStableFunc(transporters, func(a, b models.Transporter) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return transporters, nil
}

func (q *memQueries) CountTransporters(_ context.Context) (int, error) {
	defer q.lock()()
	return len(q.data.transporters), nil
}

func (q *memQueries) UpdateTransporter(_ context.Context, transporter models.Transporter) (*models.Transporter, error) {
	defer q.lock()()
	current, ok := q.data.transporters[transporter.ID]
	if !ok {
		return nil, fmt.Errorf("repository.UpdateTransporter: %w", ErrNotFound)
	}
	transporter.CreatedAt = current.CreatedAt
	transporter.UpdatedAt = time.Now().UTC()
	q.data.transporters[transporter.ID] = transporter
	return &transporter, nil
}

func (q *memQueries) DeleteTransporter(_ context.Context, transporterId string) error {
	defer q.lock()()
	if _, ok := q.data.transporters[transporterId]; !ok {
		return fmt.Errorf("repository.DeleteTransporter: %w", ErrNotFound)
	}
	delete(q.data.transporters, transporterId)
	q.data.transporterOrder = slices.DeleteFunc(q.data.transporterOrder, func(id string) bool { return id == transporterId })
	return nil
}

func (q *memQueries) CountTransporterActivity(_ context.Context, transporterId string) (int, error) {
	defer q.lock()()
	count := 0
	for _, offer := range q.data.offers {
		if offer.TransporterID == transporterId {
			count++
		}
	}
	for _, deal := range q.data.deals {
		if deal.TransporterID == transporterId {
			count++
		}
	}
	return count, nil
}
