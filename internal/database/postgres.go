package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const pingTimeout = 5 * time.Second

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateInstance 是 *migrate.Migrate 中用到的部分，測試可替換
type migrateInstance interface {
	Up() error
	Down() error
}

var (
	newPool = func(ctx context.Context, cfg *pgxpool.Config) (DB, error) {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return pool, nil
	}
	sqlOpenDB              = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn              = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
)

// NewPgxPool 建立連線池並在回傳前 Ping 一次；maxConns <= 0 時使用 pgx 預設值
func NewPgxPool(ctx context.Context, url string, maxConns int32) (DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	db, err := newPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	return db, nil
}

// RunMigrations 執行嵌入的 SQL migration (up all)
func RunMigrations(dbURL string) error {
	return withMigrator(dbURL, func(m migrateInstance) error {
		return m.Up()
	})
}

// RollbackAll 退回所有 migration (down to version 0)
func RollbackAll(dbURL string) error {
	return withMigrator(dbURL, func(m migrateInstance) error {
		return m.Down()
	})
}

func withMigrator(dbURL string, step func(migrateInstance) error) error {
	// 使用 pgx stdlib driver 建立 *sql.DB
	sqlDB, err := sqlOpenDB("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	defer sqlDB.Close()

	driver, err := postgresWithInstanceFn(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	sourceDriver, err := iofsNewFn(fs.FS(migrationsFS), "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrateNewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
