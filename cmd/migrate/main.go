// File: cmd/migrate/main.go
// migrate 以嵌入的 SQL 執行資料庫 migration：
//
//	migrate up    套用全部 migration
//	migrate down  退回全部 migration
package main

import (
	"fmt"
	"os"

	"users-api/internal/config"
	"users-api/internal/database"
	"users-api/internal/logger"
)

var (
	loadConfig  = config.Load
	migrateUp   = database.RunMigrations
	migrateDown = database.RollbackAll
	exitFunc    = os.Exit
)

func run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: migrate up|down")
	}

	var step func(string) error
	switch args[0] {
	case "up":
		step = migrateUp
	case "down":
		step = migrateDown
	default:
		return fmt.Errorf("unknown command %q (want up or down)", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Pretty)

	if err := step(cfg.Database.DSN()); err != nil {
		return err
	}
	log.Info().Str("direction", args[0]).Msg("migrations applied")
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
