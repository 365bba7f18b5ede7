package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("bad month: %w", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("CreateBill: %w", ErrConflict), http.StatusBadRequest},
		{fmt.Errorf("GetBill: %w", ErrNotFound), http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("CreateUser: %w", &pgconn.PgError{Code: "23505"}), http.StatusBadRequest},
		{&pgconn.PgError{Code: "23503"}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, HTTPStatus(tc.err), "err=%v", tc.err)
	}
}

func TestPublic(t *testing.T) {
	require.Equal(t, "server error", Public(errors.New("conn refused"), false))
	require.Equal(t, "conn refused", Public(errors.New("conn refused"), true))
	require.Equal(t, "resource not found", Public(ErrNotFound, false))
}

func TestPublicHidesWrappedOperation(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("GetBill: %w", ErrNotFound), "resource not found"},
		{fmt.Errorf("InsertBill: %w", ErrConflict), "resource already exists"},
		{fmt.Errorf("InsertUser: %w: %w", ErrConflict, &pgconn.PgError{Code: "23505", Detail: "Key (email)=(a@b.c) already exists."}), "resource already exists"},
		{fmt.Errorf("UpsertBooking: %w", &pgconn.PgError{Code: "23505"}), "resource already exists"},
		{fmt.Errorf("ParseToken: %w", ErrUnauthorized), "not authorized"},
		{fmt.Errorf("RequireAdmin: %w", ErrForbidden), "insufficient privileges"},
		{fmt.Errorf("ParseDate: %w", ErrValidation), "validation failed"},
		{fmt.Errorf("GetBill: %w", New(ErrNotFound, "Bill not found")), "Bill not found"},
	}
	for _, tc := range cases {
		for _, debug := range []bool{false, true} {
			got := Public(tc.err, debug)
			require.Equal(t, tc.want, got, tc.err.Error())
			require.NotContains(t, got, ":")
		}
	}
}

func TestNew(t *testing.T) {
	err := fmt.Errorf("GetBill: %w", New(ErrNotFound, "Bill not found"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, http.StatusNotFound, HTTPStatus(err))
	require.Equal(t, "Bill not found", Public(err, false))
	require.Equal(t, "Bill already exists for this month", Public(New(ErrConflict, "Bill already exists for this month"), true))
}
