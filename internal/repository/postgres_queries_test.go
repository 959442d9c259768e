package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

type recordedCall struct {
	sql  string
	args []any
}

// recordingDB запоминает отправленные запросы и отвечает заранее заданными результатами.
type recordingDB struct {
	calls   []recordedCall
	tag     pgconn.CommandTag
	execErr error
	rowErr  error
}

func (db *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	return db.tag, db.execErr
}

func (db *recordingDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	return emptyRows{}, nil
}

func (db *recordingDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	return errRow{err: db.rowErr}
}

func (db *recordingDB) last(t *testing.T) recordedCall {
	t.Helper()
	assert.True(t, len(db.calls) > 0)
	return db.calls[len(db.calls)-1]
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 0") }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

func stringArg(t *testing.T, arg any) string {
	t.Helper()
	switch v := arg.(type) {
	case string:
		return v
	case models.OfferStatus:
		return string(v)
	case models.BidStatus:
		return string(v)
	}
	t.Fatalf("unexpected argument type %T", arg)
	return ""
}

func TestLockBidQuery(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		mode LockMode
		want string
	}{
		{"exclusive", ForUpdate, "FOR UPDATE"},
		{"shared", ForShare, "FOR SHARE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &recordingDB{rowErr: pgx.ErrNoRows}
			q := &PostgresQueries{DB: db}

			_, err := q.LockBid(ctx, "bid-1", tt.mode)
			check.True(t, errors.Is(err, ErrNotFound))

			call := db.last(t)
			check.True(t, strings.HasSuffix(strings.TrimSpace(call.sql), tt.want))
			check.True(t, strings.Contains(call.sql, "FROM bids WHERE id = $1"))
			if check.Equal(t, 1, len(call.args)) {
				check.Equal(t, "bid-1", stringArg(t, call.args[0]))
			}
		})
	}
}

func TestAcceptanceStatements(t *testing.T) {
	ctx := context.Background()
	db := &recordingDB{tag: pgconn.NewCommandTag("UPDATE 2")}
	q := &PostgresQueries{DB: db}

	assert.NoError(t, q.UpdateOfferStatus(ctx, "offer-1", models.AcceptedOffer))
	call := db.last(t)
	check.True(t, strings.HasPrefix(call.sql, "UPDATE offers SET status = $1"))
	check.Equal(t, string(models.AcceptedOffer), stringArg(t, call.args[0]))
	check.Equal(t, "offer-1", stringArg(t, call.args[2]))

	closed, err := q.CloseOffersByBid(ctx, "bid-1", "offer-1", []models.OfferStatus{models.OpenOffer})
	assert.NoError(t, err)
	check.Equal(t, int64(2), closed)
	call = db.last(t)
	check.True(t, strings.Contains(call.sql, "status = ANY($4)"))
	check.True(t, strings.Contains(call.sql, "id::text <> $5"))
	if check.Equal(t, 5, len(call.args)) {
		check.Equal(t, string(models.ClosedOffer), stringArg(t, call.args[0]))
		check.Equal(t, "bid-1", stringArg(t, call.args[2]))
		if statuses, ok := call.args[3].(*pq.StringArray); check.True(t, ok) {
			check.Equal(t, []string{string(models.OpenOffer)}, []string(*statuses))
		}
		check.Equal(t, "offer-1", stringArg(t, call.args[4]))
	}

	assert.NoError(t, q.UpdateBidStatus(ctx, "bid-1", models.AcceptedBid))
	call = db.last(t)
	check.True(t, strings.HasPrefix(call.sql, "UPDATE bids SET status = $1"))
	check.Equal(t, string(models.AcceptedBid), stringArg(t, call.args[0]))

	bidId := "bid-1"
	deal, err := q.CreateDeal(ctx, models.Deal{BidID: &bidId, TransporterID: "tr-1", DealAmount: decimal.Zero})
	assert.NoError(t, err)
	check.NotEqual(t, "", deal.ID)
	call = db.last(t)
	check.True(t, strings.HasPrefix(call.sql, "INSERT INTO deals"))
	if check.Equal(t, 12, len(call.args)) {
		if amount, ok := call.args[4].(decimal.Decimal); check.True(t, ok) {
			check.True(t, amount.IsZero())
		}
	}

	check.Equal(t, 4, len(db.calls))
}

func TestStatementErrors(t *testing.T) {
	ctx := context.Background()

	db := &recordingDB{tag: pgconn.NewCommandTag("UPDATE 0")}
	q := &PostgresQueries{DB: db}
	check.True(t, errors.Is(q.UpdateBidStatus(ctx, "bid-1", models.ClosedBid), ErrNotFound))
	check.True(t, errors.Is(q.UpdateOfferStatus(ctx, "offer-1", models.ClosedOffer), ErrNotFound))

	db = &recordingDB{execErr: &pgconn.PgError{Code: "23514", ConstraintName: "deals_deal_amount_check"}}
	q = &PostgresQueries{DB: db}
	_, err := q.CreateDeal(ctx, models.Deal{TransporterID: "tr-1", DealAmount: decimal.NewFromInt(-1)})
	check.True(t, errors.Is(err, ErrInvalid))
	check.True(t, strings.Contains(err.Error(), "repository.CreateDeal"))

	db = &recordingDB{execErr: &pgconn.PgError{Code: "40P01"}}
	q = &PostgresQueries{DB: db}
	_, err = q.CloseOffersByBid(ctx, "bid-1", "", []models.OfferStatus{models.OpenOffer})
	check.True(t, errors.Is(err, ErrConflict))
}

func TestListBidsQuery(t *testing.T) {
	ctx := context.Background()
	db := &recordingDB{}
	q := &PostgresQueries{DB: db}

	bids, err := q.ListBids(ctx, BidFilter{Statuses: []models.BidStatus{models.OpenBid, models.ClosedBid}, Limit: 5, Offset: 10})
	assert.NoError(t, err)
	check.Equal(t, 0, len(bids))

	call := db.last(t)
	check.True(t, strings.Contains(call.sql, "WHERE status = ANY($1)"))
	check.True(t, strings.HasSuffix(call.sql, "LIMIT $2 OFFSET $3"))
	if check.Equal(t, 3, len(call.args)) {
		if statuses, ok := call.args[0].(*pq.StringArray); check.True(t, ok) {
			check.Equal(t, []string{"open", "closed"}, []string(*statuses))
		}
		check.Equal(t, 5, call.args[1].(int))
		check.Equal(t, 10, call.args[2].(int))
	}

	_, err = q.ListBids(ctx, BidFilter{Limit: 20})
	assert.NoError(t, err)
	call = db.last(t)
	check.False(t, strings.Contains(call.sql, "WHERE"))
	check.True(t, strings.HasSuffix(call.sql, "LIMIT $1 OFFSET $2"))
}
