package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound возвращается, когда запрошенная строка отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrConflict возвращается, когда хранилище отвергло запись из-за параллельного изменения.
	ErrConflict = errors.New("concurrent modification")
	// ErrInvalid возвращается, когда хранилище отвергло значения записи (ограничения, переполнение).
	ErrInvalid = errors.New("invalid data")
)

// LockMode определяет тип блокировки строки заявки внутри транзакции.
type LockMode int

const (
	ForShare LockMode = iota
	ForUpdate
)

// BidFilter - параметры выборки заявок.
type BidFilter struct {
	Statuses []models.BidStatus
	Limit    int
	Offset   int
}

// BidRepository - интерфейс для работы с заявками.
type BidRepository interface {
	CreateBid(ctx context.Context, bid models.Bid) (*models.Bid, error)
	GetBid(ctx context.Context, bidId string) (*models.Bid, error)
	LockBid(ctx context.Context, bidId string, mode LockMode) (*models.Bid, error)
	ListBids(ctx context.Context, filter BidFilter) ([]models.Bid, error)
	UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) error
}

// OfferRepository - интерфейс для работы с предложениями.
type OfferRepository interface {
	CreateOffer(ctx context.Context, offer models.Offer) (*models.Offer, error)
	GetOffer(ctx context.Context, offerId string) (*models.Offer, error)
	GetOfferView(ctx context.Context, offerId string) (*models.OfferView, error)
	ListOffers(ctx context.Context) ([]models.OfferView, error)
	ListOffersByBid(ctx context.Context, bidId string) ([]models.OfferView, error)
	ListOffersByTransporter(ctx context.Context, transporterId string) ([]models.OfferView, error)
	UpdateOfferStatus(ctx context.Context, offerId string, status models.OfferStatus) error
	// CloseOffersByBid закрывает предложения заявки с одним из статусов from, кроме exceptOfferId.
	CloseOffersByBid(ctx context.Context, bidId, exceptOfferId string, from []models.OfferStatus) (int64, error)
	DeleteOffer(ctx context.Context, offerId string) error
}

// DealRepository - интерфейс журнала сделок. Сделки только добавляются.
type DealRepository interface {
	CreateDeal(ctx context.Context, deal models.Deal) (*models.Deal, error)
	GetDealView(ctx context.Context, dealId string) (*models.DealView, error)
	ListRecentDeals(ctx context.Context, limit int) ([]models.Deal, error)
	ListDeals(ctx context.Context) ([]models.DealView, error)
	ListDealsByBid(ctx context.Context, bidId string) ([]models.Deal, error)
	ListDealsByTransporter(ctx context.Context, transporterId string) ([]models.DealView, error)
}

// TransporterRepository - интерфейс для работы с перевозчиками.
type TransporterRepository interface {
	CreateTransporter(ctx context.Context, transporter models.Transporter) (*models.Transporter, error)
	GetTransporter(ctx context.Context, transporterId string) (*models.Transporter, error)
	ListTransporters(ctx context.Context) ([]models.Transporter, error)
	CountTransporters(ctx context.Context) (int, error)
	UpdateTransporter(ctx context.Context, transporter models.Transporter) (*models.Transporter, error)
	DeleteTransporter(ctx context.Context, transporterId string) error
	// CountTransporterActivity возвращает число предложений и сделок перевозчика.
	CountTransporterActivity(ctx context.Context, transporterId string) (int, error)
}

// Querier объединяет все запросы, доступные как вне, так и внутри транзакции.
type Querier interface {
	BidRepository
	OfferRepository
	DealRepository
	TransporterRepository
}

// Store - хранилище с поддержкой транзакций.
// Если fn возвращает ошибку, все изменения внутри ExecTx откатываются.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(q Querier) error) error
}

// DBTX покрывает общие методы *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresQueries - реализация Querier поверх пула или транзакции.
type PostgresQueries struct {
	DB DBTX
}

// PostgresStore - реализация Store для базы данных.
type PostgresStore struct {
	*PostgresQueries
	pool *pgxpool.Pool
}

// NewPostgresStore создает новый экземпляр PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		PostgresQueries: &PostgresQueries{DB: pool},
		pool:            pool,
	}
}

// ExecTx выполняет fn в одной транзакции READ COMMITTED.
// Изоляция операций над заявкой обеспечивается блокировкой её строки (LockBid).
func (s *PostgresStore) ExecTx(ctx context.Context, fn func(q Querier) error) error {
	var fnErr error
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		fnErr = fn(&PostgresQueries{DB: tx})
		return fnErr
	})
	if err != nil && fnErr == nil {
		// сбой begin или commit
		return wrapErr("repository.ExecTx", err)
	}
	return err
}

// Коды ошибок PostgreSQL, означающие конфликт параллельных транзакций.
var conflictCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"23505": true, // unique_violation
	"55P03": true, // lock_not_available
}

// wrapErr приводит ошибки драйвера к ошибкам пакета, сохраняя исходную причину.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case conflictCodes[pgErr.Code]:
			return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
		case pgErr.Code == "22P02":
			// идентификатор не является uuid, такой строки быть не может
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		case strings.HasPrefix(pgErr.Code, "22"), strings.HasPrefix(pgErr.Code, "23"):
			// data exception и integrity constraint violation: повтор не поможет
			return fmt.Errorf("%s: %w: %w", op, ErrInvalid, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
