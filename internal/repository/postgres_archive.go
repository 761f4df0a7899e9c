package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movequote/internal/config"
	"movequote/internal/domain"

	_ "github.com/lib/pq"
)

// PostgresArchive mirrors completed quotes into a relational table. The
// sheet stays the source of truth; the mirror exists for reporting and
// backup, and its writes are best-effort from the orchestrator's view.
type PostgresArchive struct {
	db *sql.DB
}

func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

// OpenPostgres opens and pings the archive database.
func OpenPostgres(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// SaveCompleted upserts the reconciled record keyed by session id.
func (a *PostgresArchive) SaveCompleted(ctx context.Context, rec domain.QuoteRecord) error {
	query := `
		INSERT INTO quote_archive (
			session_id, created_at, name, phone, email, move_scope,
			home_type_details, vehicle_selection, moving_date, requirements,
			current_address, new_address, current_city, new_city,
			current_country, from_city, new_country, to_city,
			estimated_cost, distance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		          $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (session_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			move_scope = EXCLUDED.move_scope,
			home_type_details = EXCLUDED.home_type_details,
			vehicle_selection = EXCLUDED.vehicle_selection,
			moving_date = EXCLUDED.moving_date,
			requirements = EXCLUDED.requirements,
			current_address = EXCLUDED.current_address,
			new_address = EXCLUDED.new_address,
			current_city = EXCLUDED.current_city,
			new_city = EXCLUDED.new_city,
			current_country = EXCLUDED.current_country,
			from_city = EXCLUDED.from_city,
			new_country = EXCLUDED.new_country,
			to_city = EXCLUDED.to_city,
			estimated_cost = EXCLUDED.estimated_cost,
			distance = EXCLUDED.distance
	`

	row := EncodeRow(rec)
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v
	}

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to archive quote %s: %w", rec.SessionID, err)
	}
	return nil
}
