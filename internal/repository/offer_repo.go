package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const offerColumns = `o.id, o.bid_id, o.transporter_id, o.offered_price_per_km_per_ton, o.offered_price,
	o.remarks, o.status, o.created_at, o.updated_at`

// offerViewQuery соединяет предложение с заявкой и перевозчиком.
const offerViewQuery = `SELECT ` + offerColumns + `,
	b.id, b.material_type, b.quantity_tons, b.pickup_location, b.delivery_location,
	to_char(b.deadline, 'YYYY-MM-DD'), b.distance_km, b.status,
	t.id, t.name
	FROM offers o
	JOIN bids b ON b.id = o.bid_id
	JOIN transporters t ON t.id = o.transporter_id`

func scanOffer(row pgx.Row) (*models.Offer, error) {
	var offer models.Offer
	err := row.Scan(
		&offer.ID,
		&offer.BidID,
		&offer.TransporterID,
		&offer.PricePerKmPerTon,
		&offer.OfferedPrice,
		&offer.Remarks,
		&offer.Status,
		&offer.CreatedAt,
		&offer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func scanOfferView(row pgx.Row) (*models.OfferView, error) {
	var view models.OfferView
	var bid models.BidSummary
	var transporter models.TransporterSummary
	err := row.Scan(
		&view.ID,
		&view.BidID,
		&view.TransporterID,
		&view.PricePerKmPerTon,
		&view.OfferedPrice,
		&view.Remarks,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
		&bid.ID,
		&bid.MaterialType,
		&bid.QuantityTons,
		&bid.PickupLocation,
		&bid.DeliveryLocation,
		&bid.Deadline,
		&bid.DistanceKm,
		&bid.Status,
		&transporter.ID,
		&transporter.Name)
	if err != nil {
		return nil, err
	}
	view.Bid = &bid
	view.Transporter = &transporter
	return &view, nil
}

func (r *PostgresQueries) queryOfferViews(ctx context.Context, op, query string, args ...any) ([]models.OfferView, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	offers := make([]models.OfferView, 0)
	for rows.Next() {
		view, err := scanOfferView(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		offers = append(offers, *view)
	}
	return offers, wrapErr(op, rows.Err())
}

// CreateOffer создает новое предложение в статусе open.
func (r *PostgresQueries) CreateOffer(ctx context.Context, offer models.Offer) (*models.Offer, error) {
	now := time.Now().UTC()
	offer.ID = uuid.New().String()
	offer.Status = models.OpenOffer
	offer.CreatedAt = now
	offer.UpdatedAt = now

	insertQuery := `INSERT INTO offers (id, bid_id, transporter_id, offered_price_per_km_per_ton, offered_price, remarks, status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		offer.ID,
		offer.BidID,
		offer.TransporterID,
		offer.PricePerKmPerTon,
		offer.OfferedPrice,
		offer.Remarks,
		offer.Status,
		offer.CreatedAt,
		offer.UpdatedAt)
	if err != nil {
		return nil, wrapErr("repository.CreateOffer", err)
	}
	return &offer, nil
}

// GetOffer возвращает предложение по ID.
func (r *PostgresQueries) GetOffer(ctx context.Context, offerId string) (*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers o WHERE o.id = $1`
	offer, err := scanOffer(r.DB.QueryRow(ctx, query, offerId))
	if err != nil {
		return nil, wrapErr("repository.GetOffer", err)
	}
	return offer, nil
}

// GetOfferView возвращает предложение вместе с заявкой и перевозчиком.
func (r *PostgresQueries) GetOfferView(ctx context.Context, offerId string) (*models.OfferView, error) {
	view, err := scanOfferView(r.DB.QueryRow(ctx, offerViewQuery+` WHERE o.id = $1`, offerId))
	if err != nil {
		return nil, wrapErr("repository.GetOfferView", err)
	}
	return view, nil
}

// ListOffers возвращает все предложения, начиная с самых новых.
func (r *PostgresQueries) ListOffers(ctx context.Context) ([]models.OfferView, error) {
	return r.queryOfferViews(ctx, "repository.ListOffers", offerViewQuery+` ORDER BY o.created_at DESC, o.id`)
}

// ListOffersByBid возвращает предложения по заявке.
func (r *PostgresQueries) ListOffersByBid(ctx context.Context, bidId string) ([]models.OfferView, error) {
	return r.queryOfferViews(ctx, "repository.ListOffersByBid",
		offerViewQuery+` WHERE o.bid_id = $1 ORDER BY o.created_at DESC, o.id`, bidId)
}

// ListOffersByTransporter возвращает предложения перевозчика.
func (r *PostgresQueries) ListOffersByTransporter(ctx context.Context, transporterId string) ([]models.OfferView, error) {
	return r.queryOfferViews(ctx, "repository.ListOffersByTransporter",
		offerViewQuery+` WHERE o.transporter_id = $1 ORDER BY o.created_at DESC, o.id`, transporterId)
}

// UpdateOfferStatus меняет статус предложения.
func (r *PostgresQueries) UpdateOfferStatus(ctx context.Context, offerId string, status models.OfferStatus) error {
	updateQuery := `UPDATE offers SET status = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.DB.Exec(ctx, updateQuery, status, time.Now().UTC(), offerId)
	if err != nil {
		return wrapErr("repository.UpdateOfferStatus", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.UpdateOfferStatus: %w", ErrNotFound)
	}
	return nil
}

// CloseOffersByBid закрывает предложения заявки, находящиеся в одном из статусов from.
func (r *PostgresQueries) CloseOffersByBid(ctx context.Context, bidId, exceptOfferId string, from []models.OfferStatus) (int64, error) {
	statuses := make([]string, 0, len(from))
	for _, status := range from {
		statuses = append(statuses, string(status))
	}

	updateQuery := `UPDATE offers SET status = $1, updated_at = $2
	                WHERE bid_id = $3 AND status = ANY($4) AND ($5 = '' OR id::text <> $5)`
	tag, err := r.DB.Exec(ctx, updateQuery, models.ClosedOffer, time.Now().UTC(), bidId, pq.Array(statuses), exceptOfferId)
	if err != nil {
		return 0, wrapErr("repository.CloseOffersByBid", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOffer удаляет предложение.
func (r *PostgresQueries) DeleteOffer(ctx context.Context, offerId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM offers WHERE id = $1`, offerId)
	if err != nil {
		return wrapErr("repository.DeleteOffer", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.DeleteOffer: %w", ErrNotFound)
	}
	return nil
}
