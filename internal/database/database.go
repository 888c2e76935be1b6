package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"vendormart/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service owns the database handle. It is constructed once at startup and
// injected into repositories; its lifecycle belongs to the server shutdown
// sequence, not to a package-level global.
type Service struct {
	db *sql.DB
}

// New opens a connection pool against the configured Postgres instance and
// verifies connectivity before returning.
func New(cfg config.DatabaseConfig) (*Service, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Service{db: db}, nil
}

// DB exposes the underlying handle for repositories and migrations
func (s *Service) DB() *sql.DB {
	return s.db
}

// Health returns a snapshot of connection pool statistics
func (s *Service) Health() map[string]string {
	stats := s.db.Stats()

	health := map[string]string{
		"status":           "up",
		"open_connections": strconv.Itoa(stats.OpenConnections),
		"in_use":           strconv.Itoa(stats.InUse),
		"idle":             strconv.Itoa(stats.Idle),
		"wait_count":       strconv.FormatInt(stats.WaitCount, 10),
	}

	if err := s.db.Ping(); err != nil {
		health["status"] = "down"
		health["error"] = err.Error()
	}

	return health
}

// Close releases the connection pool
func (s *Service) Close() error {
	return s.db.Close()
}
