package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"condo-reservations/internal/handler/middleware"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/config"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [up|down|step-up|drop]\n", os.Args[0])
		flag.PrintDefaults()
	}
	path := flag.String("path", "", "migrations directory (defaults to BOOKING_MIGRATIONS_PATH)")
	flag.Parse()

	action := db.MigrateUp
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.LoadMigrateConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(middleware.NewLogger(cfg.Log).GetSlogLogger())

	migrationsPath := cfg.Booking.MigrationsPath
	if *path != "" {
		migrationsPath = *path
	}

	if err := db.Migrate(cfg.DB, migrationsPath, action); err != nil {
		slog.Error("マイグレーションに失敗しました", "action", action, "error", err)
		os.Exit(1)
	}
}
