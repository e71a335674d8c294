// File: internal/store/user_test.go
package store

import (
	"context"
	"errors"
	"testing"

	"users-api/internal/database"
	"users-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeUserRow 支援兩種 Scan 呼叫場景：
// 1) len(dest)==6 → GetUserByID
// 2) len(dest)==1 → CreateUser (RETURNING id)
type fakeUserRow struct {
	scanErr error
	user    *model.User
}

func (r *fakeUserRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.user
	switch len(dest) {
	case 6:
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Name
		*dest[2].(*string) = u.Email
		*dest[3].(*string) = u.Password
		*dest[4].(*string) = u.AccountType
		*dest[5].(*string) = u.Role
	case 1:
		*dest[0].(*int) = u.ID
	default:
		panic("fakeUserRow.Scan: unexpected dest count")
	}
	return nil
}

func execReturning(tag string, err error) func(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag(tag), err
	}
}

/* ---------- 完整測試 ---------- */

func TestUserStore(t *testing.T) {
	sample := &model.User{
		ID:          7,
		Name:        "Alice",
		Email:       "alice@example.com",
		Password:    "pw",
		AccountType: "family",
		Role:        "admin",
	}

	/* --- GetUserByID --- */
	t.Run("GetUserByID success", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeUserRow{user: sample}
			},
		}
		u, err := GetUserByID(context.Background(), db, 7)
		require.NoError(t, err)
		require.Equal(t, *sample, *u)
		require.Equal(t, []any{7}, gotArgs)
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		u, err := GetUserByID(context.Background(), db, 999999)
		require.ErrorIs(t, err, ErrUserNotFound)
		require.Nil(t, u)
	})

	t.Run("GetUserByID other error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: errors.New("conn reset")}
			},
		}
		_, err := GetUserByID(context.Background(), db, 1)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUserNotFound)
	})

	/* --- CreateUser --- */
	t.Run("CreateUser success", func(t *testing.T) {
		newUser := &model.User{Name: "Bob", Email: "bob@x.com", Password: "pw", AccountType: "individual", Role: "member"}
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeUserRow{user: &model.User{ID: 42}}
			},
		}
		created, err := CreateUser(context.Background(), db, newUser)
		require.NoError(t, err)
		require.Equal(t, 42, created.ID)
		require.Equal(t, "Bob", created.Name)
		require.Equal(t, []any{"Bob", "bob@x.com", "pw", "individual", "member"}, gotArgs)
	})

	t.Run("CreateUser error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: errors.New("db down")}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{})
		require.Error(t, err)
	})

	/* --- UpdateUser --- */
	t.Run("UpdateUser success", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				gotArgs = args
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, UpdateUser(context.Background(), db, sample))
		require.Equal(t, 7, gotArgs[len(gotArgs)-1])
	})

	t.Run("UpdateUser missing row", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: execReturning("UPDATE 0", nil)}
		require.ErrorIs(t, UpdateUser(context.Background(), db, sample), ErrUserNotFound)
	})

	t.Run("UpdateUser error", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: execReturning("", errors.New("update failed"))}
		err := UpdateUser(context.Background(), db, sample)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUserNotFound)
	})

	/* --- DeleteUser --- */
	t.Run("DeleteUser success", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: execReturning("DELETE 1", nil)}
		require.NoError(t, DeleteUser(context.Background(), db, 7))
	})

	t.Run("DeleteUser missing row", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: execReturning("DELETE 0", nil)}
		require.ErrorIs(t, DeleteUser(context.Background(), db, 7), ErrUserNotFound)
	})

	t.Run("DeleteUser error", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: execReturning("", errors.New("delete failed"))}
		require.Error(t, DeleteUser(context.Background(), db, 7))
	})
}
