package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peterldowns/testy/check"
)

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound bool
		conflict bool
		invalid  bool
	}{
		{"no rows", pgx.ErrNoRows, true, false, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, false, true, false},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, false, true, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false, true, false},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, false, true, false},
		{"invalid uuid", &pgconn.PgError{Code: "22P02"}, true, false, false},
		{"check violation", &pgconn.PgError{Code: "23514"}, false, false, true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false, false, true},
		{"not null violation", &pgconn.PgError{Code: "23502"}, false, false, true},
		{"numeric out of range", &pgconn.PgError{Code: "22003"}, false, false, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, false, false, false},
		{"driver error", errors.New("connection refused"), false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapErr("repository.Test", tt.err)
			check.Error(t, err)
			check.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
			check.Equal(t, tt.conflict, errors.Is(err, ErrConflict))
			check.Equal(t, tt.invalid, errors.Is(err, ErrInvalid))
		})
	}

	check.Nil(t, wrapErr("repository.Test", nil))
}
