package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const bidColumns = `id, material_type, quantity_tons, pickup_location, delivery_location,
	to_char(deadline, 'YYYY-MM-DD'), transporter_requirements, distance_km,
	base_price_rupee_per_km_per_ton, status, created_by, created_at, updated_at`

func scanBid(row pgx.Row) (*models.Bid, error) {
	var bid models.Bid
	err := row.Scan(
		&bid.ID,
		&bid.MaterialType,
		&bid.QuantityTons,
		&bid.PickupLocation,
		&bid.DeliveryLocation,
		&bid.Deadline,
		&bid.TransporterRequirements,
		&bid.DistanceKm,
		&bid.BasePrice,
		&bid.Status,
		&bid.CreatedBy,
		&bid.CreatedAt,
		&bid.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// CreateBid создает новую заявку в статусе open.
func (r *PostgresQueries) CreateBid(ctx context.Context, bid models.Bid) (*models.Bid, error) {
	now := time.Now().UTC()
	bid.ID = uuid.New().String()
	bid.Status = models.OpenBid
	bid.CreatedAt = now
	bid.UpdatedAt = now

	insertQuery := `INSERT INTO bids (id, material_type, quantity_tons, pickup_location, delivery_location, deadline,
                   transporter_requirements, distance_km, base_price_rupee_per_km_per_ton, status, created_by, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		bid.ID,
		bid.MaterialType,
		bid.QuantityTons,
		bid.PickupLocation,
		bid.DeliveryLocation,
		bid.Deadline,
		bid.TransporterRequirements,
		bid.DistanceKm,
		bid.BasePrice,
		bid.Status,
		bid.CreatedBy,
		bid.CreatedAt,
		bid.UpdatedAt)
	if err != nil {
		return nil, wrapErr("repository.CreateBid", err)
	}
	return &bid, nil
}

// GetBid возвращает заявку по ID.
func (r *PostgresQueries) GetBid(ctx context.Context, bidId string) (*models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`
	bid, err := scanBid(r.DB.QueryRow(ctx, query, bidId))
	if err != nil {
		return nil, wrapErr("repository.GetBid", err)
	}
	return bid, nil
}

// LockBid читает заявку с блокировкой строки до конца транзакции.
// Все транзакции, меняющие заявку или её предложения, начинают с этого вызова.
func (r *PostgresQueries) LockBid(ctx context.Context, bidId string, mode LockMode) (*models.Bid, error) {
	lock := "FOR SHARE"
	if mode == ForUpdate {
		lock = "FOR UPDATE"
	}
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1 ` + lock
	bid, err := scanBid(r.DB.QueryRow(ctx, query, bidId))
	if err != nil {
		return nil, wrapErr("repository.LockBid", err)
	}
	return bid, nil
}

// ListBids возвращает заявки, начиная с самых новых.
func (r *PostgresQueries) ListBids(ctx context.Context, filter BidFilter) ([]models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("repository.ListBids", err)
	}
	defer rows.Close()

	bids := make([]models.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, wrapErr("repository.ListBids", err)
		}
		bids = append(bids, *bid)
	}
	return bids, wrapErr("repository.ListBids", rows.Err())
}

// UpdateBidStatus меняет статус заявки.
func (r *PostgresQueries) UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) error {
	updateQuery := `UPDATE bids SET status = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.DB.Exec(ctx, updateQuery, status, time.Now().UTC(), bidId)
	if err != nil {
		return wrapErr("repository.UpdateBidStatus", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.UpdateBidStatus: %w", ErrNotFound)
	}
	return nil
}
