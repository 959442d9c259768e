package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transporterColumns = `id, name, contact_number, vehicle_type, capacity_tons, status, created_at, updated_at`

func scanTransporter(row pgx.Row) (*models.Transporter, error) {
	var transporter models.Transporter
	err := row.Scan(
		&transporter.ID,
		&transporter.Name,
		&transporter.ContactNumber,
		&transporter.VehicleType,
		&transporter.CapacityTons,
		&transporter.Status,
		&transporter.CreatedAt,
		&transporter.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &transporter, nil
}

// CreateTransporter создает перевозчика.
func (r *PostgresQueries) CreateTransporter(ctx context.Context, transporter models.Transporter) (*models.Transporter, error) {
	now := time.Now().UTC()
	transporter.ID = uuid.New().String()
	transporter.CreatedAt = now
	transporter.UpdatedAt = now
	if transporter.Status == "" {
		transporter.Status = models.ActiveTransporter
	}

	_, err := r.DB.Exec(ctx, `
       INSERT INTO transporters (id, name, contact_number, vehicle_type, capacity_tons, status, created_at, updated_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
   `,
		transporter.ID,
		transporter.Name,
		transporter.ContactNumber,
		transporter.VehicleType,
		transporter.CapacityTons,
		transporter.Status,
		transporter.CreatedAt,
		transporter.UpdatedAt)
	if err != nil {
		return nil, wrapErr("repository.CreateTransporter", err)
	}
	return &transporter, nil
}

// GetTransporter возвращает перевозчика по ID.
func (r *PostgresQueries) GetTransporter(ctx context.Context, transporterId string) (*models.Transporter, error) {
	query := `SELECT ` + transporterColumns + ` FROM transporters WHERE id = $1`
	transporter, err := scanTransporter(r.DB.QueryRow(ctx, query, transporterId))
	if err != nil {
		return nil, wrapErr("repository.GetTransporter", err)
	}
	return transporter, nil
}

// ListTransporters возвращает всех перевозчиков по имени.
func (r *PostgresQueries) ListTransporters(ctx context.Context) ([]models.Transporter, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+transporterColumns+` FROM transporters ORDER BY name, id`)
	if err != nil {
		return nil, wrapErr("repository.ListTransporters", err)
	}
	defer rows.Close()

	transporters := make([]models.Transporter, 0)
	for rows.Next() {
		transporter, err := scanTransporter(rows)
		if err != nil {
			return nil, wrapErr("repository.ListTransporters", err)
		}
		transporters = append(transporters, *transporter)
	}
	return transporters, wrapErr("repository.ListTransporters", rows.Err())
}

// CountTransporters возвращает число перевозчиков.
func (r *PostgresQueries) CountTransporters(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM transporters`).Scan(&count)
	if err != nil {
		return 0, wrapErr("repository.CountTransporters", err)
	}
	return count, nil
}

// UpdateTransporter сохраняет все изменяемые поля перевозчика.
func (r *PostgresQueries) UpdateTransporter(ctx context.Context, transporter models.Transporter) (*models.Transporter, error) {
	updateQuery := `UPDATE transporters
	                SET name = $1, contact_number = $2, vehicle_type = $3, capacity_tons = $4, status = $5, updated_at = $6
	                WHERE id = $7 RETURNING ` + transporterColumns
	updated, err := scanTransporter(r.DB.QueryRow(
		ctx,
		updateQuery,
		transporter.Name,
		transporter.ContactNumber,
		transporter.VehicleType,
		transporter.CapacityTons,
		transporter.Status,
		time.Now().UTC(),
		transporter.ID))
	if err != nil {
		return nil, wrapErr("repository.UpdateTransporter", err)
	}
	return updated, nil
}

// DeleteTransporter удаляет перевозчика.
func (r *PostgresQueries) DeleteTransporter(ctx context.Context, transporterId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM transporters WHERE id = $1`, transporterId)
	if err != nil {
		return wrapErr("repository.DeleteTransporter", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.DeleteTransporter: %w", ErrNotFound)
	}
	return nil
}

// CountTransporterActivity возвращает суммарное число предложений и сделок перевозчика.
func (r *PostgresQueries) CountTransporterActivity(ctx context.Context, transporterId string) (int, error) {
	var count int
	query := `SELECT (SELECT COUNT(*) FROM offers WHERE transporter_id = $1) +
	                 (SELECT COUNT(*) FROM deals WHERE transporter_id = $1)`
	err := r.DB.QueryRow(ctx, query, transporterId).Scan(&count)
	if err != nil {
		return 0, wrapErr("repository.CountTransporterActivity", err)
	}
	return count, nil
}
