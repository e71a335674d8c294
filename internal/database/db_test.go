package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// pgxpool.Pool 必須一直滿足 DB
var _ DB = (*pgxpool.Pool)(nil)

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

func TestFakeDBPanicsWhenUnset(t *testing.T) {
	db := &FakeDB{}
	ctx := context.Background()
	require.Panics(t, func() { _, _ = db.Exec(ctx, "DELETE FROM users") })
	require.Panics(t, func() { db.QueryRow(ctx, "SELECT 1") })
	require.Panics(t, func() { _ = db.Ping(ctx) })
	require.NotPanics(t, db.Close)
}

func TestFakeDBForwardsCalls(t *testing.T) {
	ctx := context.Background()
	var gotSQL []string
	var gotArgs [][]any
	record := func(sql string, args []any) {
		gotSQL = append(gotSQL, sql)
		gotArgs = append(gotArgs, args)
	}
	closed := false

	db := &FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			record(sql, args)
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			record(sql, args)
			return scanFunc(func(dest ...any) error {
				*dest[0].(*int) = 9
				return nil
			})
		},
		PingFn:  func(context.Context) error { return errors.New("down") },
		CloseFn: func() { closed = true },
	}

	tag, err := db.Exec(ctx, "exec", 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())

	var id int
	require.NoError(t, db.QueryRow(ctx, "row", "a", "b").Scan(&id))
	require.Equal(t, 9, id)
	require.EqualError(t, db.Ping(ctx), "down")
	db.Close()

	require.Equal(t, []string{"exec", "row"}, gotSQL)
	require.Equal(t, []any{1}, gotArgs[0])
	require.Equal(t, []any{"a", "b"}, gotArgs[1])
	require.True(t, closed)
}
