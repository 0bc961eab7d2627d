package main

import (
	"log"
	"net/http"
	"os"

	"github.com/josbon93/Elite-Games-Soccer-Room/internal/config"
	"github.com/josbon93/Elite-Games-Soccer-Room/internal/db"
	"github.com/josbon93/Elite-Games-Soccer-Room/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	addr := ":5000"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	// The kiosk runs fine without a database; scores just stay in
	// memory for the day.
	conn, err := db.Open()
	if err != nil {
		log.Printf("running without database: %v", err)
		conn = nil
	} else if err := db.Configure(conn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeSeconds, cfg.DBConnMaxIdleTimeSeconds); err != nil {
		log.Printf("db pool configuration failed: %v", err)
	}

	srv := server.New(conn, cfg)
	log.Printf("elite games kiosk listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
