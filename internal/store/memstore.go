package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avvvet/fabbrica-intent/internal/domain"
)

// Mem is an in-memory store implementing both repositories with the same
// semantics as the PostgreSQL variant: name/code lookups touch every
// matching row, and the job closure date is stamped only on the transition
// into Completata. It backs development runs without a database and the
// test suite.
type Mem struct {
	mu       sync.Mutex
	machines []domain.Machine
	jobs     []domain.Job
	nextID   int64
	now      func() time.Time
}

func NewMem() *Mem {
	return &Mem{nextID: 1, now: time.Now}
}

// NewMemSeeded returns a Mem with the same demo machine a fresh PostgreSQL
// install is seeded with.
func NewMemSeeded() *Mem {
	m := NewMem()
	_ = m.CreateMachine(context.Background(), "Fresatrice A1", domain.MachineActive)
	return m
}

// Machines returns the domain.MachineRepository view of the store.
func (m *Mem) Machines() domain.MachineRepository { return memMachines{m} }

// Jobs returns the domain.JobRepository view of the store.
func (m *Mem) Jobs() domain.JobRepository { return memJobs{m} }

func (m *Mem) CreateMachine(ctx context.Context, nome, stato string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.machines = append(m.machines, domain.Machine{ID: m.nextID, Nome: nome, Stato: stato})
	m.nextID++
	return nil
}

func (m *Mem) ListMachines(ctx context.Context) ([]domain.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Machine, len(m.machines))
	copy(out, m.machines)
	return out, nil
}

func (m *Mem) UpdateMachineStatus(ctx context.Context, nome, stato string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := 0
	for i := range m.machines {
		if m.machines[i].Nome == nome {
			m.machines[i].Stato = stato
			matched++
		}
	}
	if matched == 0 {
		return fmt.Errorf("machine %q: %w", nome, domain.ErrNotFound)
	}
	return nil
}

func (m *Mem) CreateJob(ctx context.Context, job domain.NewJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, domain.Job{
		ID:              m.nextID,
		Codice:          job.Codice,
		Prodotto:        job.Prodotto,
		Quantita:        job.Quantita,
		Stato:           domain.JobPlanned,
		CostoMateriale:  job.CostoMateriale,
		CostoManodopera: job.CostoManodopera,
		PrezzoVendita:   job.PrezzoVendita,
		DataCreazione:   m.now(),
	})
	m.nextID++
	return nil
}

func (m *Mem) ListJobs(ctx context.Context) ([]domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// newest first, matching the SQL ORDER BY id DESC
	out := make([]domain.Job, 0, len(m.jobs))
	for i := len(m.jobs) - 1; i >= 0; i-- {
		out = append(out, m.jobs[i])
	}
	return out, nil
}

func (m *Mem) UpdateJobStatus(ctx context.Context, codice, stato string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := 0
	for i := range m.jobs {
		if m.jobs[i].Codice != codice {
			continue
		}
		if stato == domain.JobCompleted && m.jobs[i].Stato != domain.JobCompleted {
			closed := m.now()
			m.jobs[i].DataChiusura = &closed
		}
		m.jobs[i].Stato = stato
		matched++
	}
	if matched == 0 {
		return fmt.Errorf("job %q: %w", codice, domain.ErrNotFound)
	}
	return nil
}

type memMachines struct{ m *Mem }

func (r memMachines) List(ctx context.Context) ([]domain.Machine, error) {
	return r.m.ListMachines(ctx)
}
func (r memMachines) Create(ctx context.Context, nome, stato string) error {
	return r.m.CreateMachine(ctx, nome, stato)
}
func (r memMachines) UpdateStatus(ctx context.Context, nome, stato string) error {
	return r.m.UpdateMachineStatus(ctx, nome, stato)
}

type memJobs struct{ m *Mem }

func (r memJobs) List(ctx context.Context) ([]domain.Job, error) {
	return r.m.ListJobs(ctx)
}
func (r memJobs) Create(ctx context.Context, job domain.NewJob) error {
	return r.m.CreateJob(ctx, job)
}
func (r memJobs) UpdateStatus(ctx context.Context, codice, stato string) error {
	return r.m.UpdateJobStatus(ctx, codice, stato)
}
