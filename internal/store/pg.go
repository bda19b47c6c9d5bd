// Package store persists machines and jobs in PostgreSQL and renders the
// plain-text listings embedded in every prompt. An in-memory variant backs
// development runs without a database and the test suite.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avvvet/fabbrica-intent/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS macchine (
    id SERIAL PRIMARY KEY,
    nome TEXT NOT NULL,
    stato TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS commesse (
    id SERIAL PRIMARY KEY,
    codice TEXT NOT NULL,
    prodotto TEXT NOT NULL,
    quantita INTEGER NOT NULL,
    stato TEXT NOT NULL DEFAULT 'Pianificata',
    costo_materiale NUMERIC(12,2) NOT NULL DEFAULT 0,
    costo_manodopera NUMERIC(12,2) NOT NULL DEFAULT 0,
    prezzo_vendita NUMERIC(12,2) NOT NULL DEFAULT 0,
    data_creazione TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    data_chiusura TIMESTAMPTZ
);
`

// NewPool opens a pgx connection pool against databaseURL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MaxConnLifetime = time.Hour

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

// InitSchema creates the tables when absent and seeds a demo machine the
// first time the plant registry is empty, so a fresh install has something
// to talk about.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var machines int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM macchine`).Scan(&machines); err != nil {
		return fmt.Errorf("count machines: %w", err)
	}
	if machines == 0 {
		_, err := pool.Exec(ctx, `INSERT INTO macchine (nome, stato) VALUES ($1, $2)`,
			"Fresatrice A1", domain.MachineActive)
		if err != nil {
			return fmt.Errorf("seed machines: %w", err)
		}
	}
	return nil
}
