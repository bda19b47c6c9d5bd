package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avvvet/fabbrica-intent/internal/domain"
)

// MachineRepoPG implements domain.MachineRepository on PostgreSQL.
type MachineRepoPG struct {
	pool *pgxpool.Pool
}

func NewMachineRepo(pool *pgxpool.Pool) *MachineRepoPG {
	return &MachineRepoPG{pool: pool}
}

func (r *MachineRepoPG) List(ctx context.Context) ([]domain.Machine, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nome, stato FROM macchine ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	var machines []domain.Machine
	for rows.Next() {
		var m domain.Machine
		if err := rows.Scan(&m.ID, &m.Nome, &m.Stato); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		machines = append(machines, m)
	}
	return machines, rows.Err()
}

func (r *MachineRepoPG) Create(ctx context.Context, nome, stato string) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO macchine (nome, stato) VALUES ($1, $2)`, nome, stato)
	if err != nil {
		return fmt.Errorf("create machine: %w", err)
	}
	return nil
}

// UpdateStatus is keyed on nome: when duplicates exist every matching row
// is updated in the same statement.
func (r *MachineRepoPG) UpdateStatus(ctx context.Context, nome, stato string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE macchine SET stato = $2 WHERE nome = $1`, nome, stato)
	if err != nil {
		return fmt.Errorf("update machine status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("machine %q: %w", nome, domain.ErrNotFound)
	}
	return nil
}
