// Command main applies the database schema migrations and exits.
package main

import (
	"log/slog"
	"os"

	"pinboard/internal/config"
	"pinboard/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect migrates as part of opening the connection.
	if _, err := database.Connect(cfg); err != nil {
		slog.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("schema up to date", slog.String("database", cfg.DBName))
}
