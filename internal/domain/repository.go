package domain

import "context"

// MachineRepository defines persistence for machines. UpdateStatus is keyed
// on nome and touches every matching row; callers that need a single target
// must ensure names are unique themselves.
type MachineRepository interface {
	List(ctx context.Context) ([]Machine, error)
	Create(ctx context.Context, nome, stato string) error
	UpdateStatus(ctx context.Context, nome, stato string) error
}

// JobRepository defines persistence for jobs. UpdateStatus stamps the
// closure date when a job first transitions to Completata.
type JobRepository interface {
	List(ctx context.Context) ([]Job, error)
	Create(ctx context.Context, job NewJob) error
	UpdateStatus(ctx context.Context, codice, stato string) error
}
