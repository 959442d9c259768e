package repository

import (
	"context"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const dealColumns = `d.id, d.bid_id, d.transporter_id, d.created_by, d.deal_amount, d.material_type, d.quantity_tons,
	d.pickup_location, d.delivery_location, d.distance_km, to_char(d.deal_date, 'YYYY-MM-DD'), d.created_at`

// dealViewQuery соединяет сделку с заявкой (может отсутствовать), перевозчиком и автором.
const dealViewQuery = `SELECT ` + dealColumns + `,
	b.id, b.material_type, b.quantity_tons, b.pickup_location, b.delivery_location,
	to_char(b.deadline, 'YYYY-MM-DD'), b.distance_km, b.status,
	t.id, t.name,
	u.id, u.email
	FROM deals d
	LEFT JOIN bids b ON b.id = d.bid_id
	JOIN transporters t ON t.id = d.transporter_id
	LEFT JOIN users u ON u.id = d.created_by`

func scanDeal(row pgx.Row) (*models.Deal, error) {
	var deal models.Deal
	err := row.Scan(
		&deal.ID,
		&deal.BidID,
		&deal.TransporterID,
		&deal.CreatedBy,
		&deal.DealAmount,
		&deal.MaterialType,
		&deal.QuantityTons,
		&deal.PickupLocation,
		&deal.DeliveryLocation,
		&deal.DistanceKm,
		&deal.DealDate,
		&deal.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func scanDealView(row pgx.Row) (*models.DealView, error) {
	var view models.DealView
	var (
		bidID, bidMaterial, bidPickup, bidDelivery, bidDeadline *string
		bidQuantity                                             *int
		bidDistance                                             *float64
		bidStatus                                               *models.BidStatus
		transporter                                             models.TransporterSummary
		userID, userEmail                                       *string
	)
	err := row.Scan(
		&view.ID,
		&view.BidID,
		&view.TransporterID,
		&view.CreatedBy,
		&view.DealAmount,
		&view.MaterialType,
		&view.QuantityTons,
		&view.PickupLocation,
		&view.DeliveryLocation,
		&view.DistanceKm,
		&view.DealDate,
		&view.CreatedAt,
		&bidID,
		&bidMaterial,
		&bidQuantity,
		&bidPickup,
		&bidDelivery,
		&bidDeadline,
		&bidDistance,
		&bidStatus,
		&transporter.ID,
		&transporter.Name,
		&userID,
		&userEmail)
	if err != nil {
		return nil, err
	}

	if bidID != nil {
		view.Bid = &models.BidSummary{
			ID:               *bidID,
			MaterialType:     *bidMaterial,
			QuantityTons:     *bidQuantity,
			PickupLocation:   *bidPickup,
			DeliveryLocation: *bidDelivery,
			Deadline:         *bidDeadline,
			DistanceKm:       *bidDistance,
			Status:           *bidStatus,
		}
	}
	view.Transporter = &transporter
	if userID != nil {
		view.User = &models.UserSummary{ID: *userID, Email: *userEmail}
	}
	return &view, nil
}

func (r *PostgresQueries) queryDealViews(ctx context.Context, op, query string, args ...any) ([]models.DealView, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	deals := make([]models.DealView, 0)
	for rows.Next() {
		view, err := scanDealView(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		deals = append(deals, *view)
	}
	return deals, wrapErr(op, rows.Err())
}

// CreateDeal добавляет сделку в журнал.
func (r *PostgresQueries) CreateDeal(ctx context.Context, deal models.Deal) (*models.Deal, error) {
	deal.ID = uuid.New().String()
	deal.CreatedAt = time.Now().UTC()
	if deal.DealDate == "" {
		deal.DealDate = deal.CreatedAt.Format(time.DateOnly)
	}

	insertQuery := `INSERT INTO deals (id, bid_id, transporter_id, created_by, deal_amount, material_type, quantity_tons,
                   pickup_location, delivery_location, distance_km, deal_date, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::date, $12)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		deal.ID,
		deal.BidID,
		deal.TransporterID,
		deal.CreatedBy,
		deal.DealAmount,
		deal.MaterialType,
		deal.QuantityTons,
		deal.PickupLocation,
		deal.DeliveryLocation,
		deal.DistanceKm,
		deal.DealDate,
		deal.CreatedAt)
	if err != nil {
		return nil, wrapErr("repository.CreateDeal", err)
	}
	return &deal, nil
}

// GetDealView возвращает сделку со связанными проекциями.
func (r *PostgresQueries) GetDealView(ctx context.Context, dealId string) (*models.DealView, error) {
	view, err := scanDealView(r.DB.QueryRow(ctx, dealViewQuery+` WHERE d.id = $1`, dealId))
	if err != nil {
		return nil, wrapErr("repository.GetDealView", err)
	}
	return view, nil
}

// ListRecentDeals возвращает последние limit сделок, начиная с самых новых.
func (r *PostgresQueries) ListRecentDeals(ctx context.Context, limit int) ([]models.Deal, error) {
	return r.queryDeals(ctx, "repository.ListRecentDeals",
		`SELECT `+dealColumns+` FROM deals d ORDER BY d.created_at DESC, d.id LIMIT $1`, limit)
}

// ListDealsByBid возвращает сделки по заявке.
func (r *PostgresQueries) ListDealsByBid(ctx context.Context, bidId string) ([]models.Deal, error) {
	return r.queryDeals(ctx, "repository.ListDealsByBid",
		`SELECT `+dealColumns+` FROM deals d WHERE d.bid_id = $1 ORDER BY d.created_at DESC, d.id`, bidId)
}

func (r *PostgresQueries) queryDeals(ctx context.Context, op, query string, args ...any) ([]models.Deal, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	deals := make([]models.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		deals = append(deals, *deal)
	}
	return deals, wrapErr(op, rows.Err())
}

// ListDeals возвращает все сделки, начиная с самых новых.
func (r *PostgresQueries) ListDeals(ctx context.Context) ([]models.DealView, error) {
	return r.queryDealViews(ctx, "repository.ListDeals", dealViewQuery+` ORDER BY d.created_at DESC, d.id`)
}

// ListDealsByTransporter возвращает сделки перевозчика по дате сделки.
func (r *PostgresQueries) ListDealsByTransporter(ctx context.Context, transporterId string) ([]models.DealView, error) {
	return r.queryDealViews(ctx, "repository.ListDealsByTransporter",
		dealViewQuery+` WHERE d.transporter_id = $1 ORDER BY d.deal_date DESC, d.created_at DESC`, transporterId)
}
