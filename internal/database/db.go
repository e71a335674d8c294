package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB 是 store 與健康檢查共用的連線，*pgxpool.Pool 即滿足此介面
type DB interface {
	// Exec 用於 UPDATE / DELETE，呼叫端以 RowsAffected 判斷資料是否存在
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	// QueryRow 用於 INSERT ... RETURNING 與單筆查詢
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// FakeDB 供測試使用；未設定的 Fn 被呼叫時 panic（Close 除外）
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn == nil {
		panic("FakeDB: unexpected Exec " + sql)
	}
	return f.ExecFn(ctx, sql, args...)
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn == nil {
		panic("FakeDB: unexpected QueryRow " + sql)
	}
	return f.QueryRowFn(ctx, sql, args...)
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn == nil {
		panic("FakeDB: unexpected Ping")
	}
	return f.PingFn(ctx)
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}
