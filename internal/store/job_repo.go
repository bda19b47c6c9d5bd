package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avvvet/fabbrica-intent/internal/domain"
)

// JobRepoPG implements domain.JobRepository on PostgreSQL.
type JobRepoPG struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepoPG {
	return &JobRepoPG{pool: pool}
}

func (r *JobRepoPG) List(ctx context.Context) ([]domain.Job, error) {
	query := `
SELECT id, codice, prodotto, quantita, stato,
       costo_materiale, costo_manodopera, prezzo_vendita,
       data_creazione, data_chiusura
FROM commesse
ORDER BY id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.ID, &j.Codice, &j.Prodotto, &j.Quantita, &j.Stato,
			&j.CostoMateriale, &j.CostoManodopera, &j.PrezzoVendita,
			&j.DataCreazione, &j.DataChiusura,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepoPG) Create(ctx context.Context, job domain.NewJob) error {
	query := `
INSERT INTO commesse (codice, prodotto, quantita, costo_materiale, costo_manodopera, prezzo_vendita)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		job.Codice, job.Prodotto, job.Quantita,
		job.CostoMateriale, job.CostoManodopera, job.PrezzoVendita,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of every job matching codice. The closure
// date is stamped only on the transition into Completata; re-applying
// Completata to an already-completed job leaves it untouched, and moving
// away from Completata never clears it.
func (r *JobRepoPG) UpdateStatus(ctx context.Context, codice, stato string) error {
	query := `
UPDATE commesse
SET stato = $2,
    data_chiusura = CASE
        WHEN $2 = 'Completata' AND stato <> 'Completata' THEN NOW()
        ELSE data_chiusura
    END
WHERE codice = $1`
	tag, err := r.pool.Exec(ctx, query, codice, stato)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %q: %w", codice, domain.ErrNotFound)
	}
	return nil
}
