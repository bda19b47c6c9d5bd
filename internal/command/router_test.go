package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avvvet/fabbrica-intent/internal/domain"
)

type fakeMachines struct {
	updates [][2]string
	err     error
}

func (f *fakeMachines) List(ctx context.Context) ([]domain.Machine, error) { return nil, nil }
func (f *fakeMachines) Create(ctx context.Context, nome, stato string) error {
	return f.err
}
func (f *fakeMachines) UpdateStatus(ctx context.Context, nome, stato string) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, [2]string{nome, stato})
	return nil
}

type fakeJobs struct {
	created []domain.NewJob
	updates [][2]string
	err     error
}

func (f *fakeJobs) List(ctx context.Context) ([]domain.Job, error) { return nil, nil }
func (f *fakeJobs) Create(ctx context.Context, job domain.NewJob) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, job)
	return nil
}
func (f *fakeJobs) UpdateStatus(ctx context.Context, codice, stato string) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, [2]string{codice, stato})
	return nil
}

func newTestRouter(machines *fakeMachines, jobs *fakeJobs) *Router {
	return NewRouter(machines, jobs, zerolog.Nop())
}

func TestDispatchUpdateMachine(t *testing.T) {
	machines := &fakeMachines{}
	r := newTestRouter(machines, &fakeJobs{})

	res := r.Dispatch(context.Background(), `{"comando":"aggiorna_macchina","nome":"A1","stato":"Errore"}`)

	if res.Outcome != Applied {
		t.Fatalf("Outcome = %v, want Applied (%s)", res.Outcome, res.Message)
	}
	if len(machines.updates) != 1 || machines.updates[0] != [2]string{"A1", "Errore"} {
		t.Fatalf("unexpected store calls: %v", machines.updates)
	}
	if !strings.Contains(res.Message, "A1") || !strings.Contains(res.Message, "Errore") {
		t.Fatalf("confirmation %q must mention identifier and new status", res.Message)
	}
}

func TestDispatchCreateJobDefaultsCostsToZero(t *testing.T) {
	jobs := &fakeJobs{}
	r := newTestRouter(&fakeMachines{}, jobs)

	res := r.Dispatch(context.Background(), `{"comando":"nuova_commessa","codice":"JOB-9","prodotto":"Bracket","quantita":50}`)

	if res.Outcome != Applied {
		t.Fatalf("Outcome = %v, want Applied (%s)", res.Outcome, res.Message)
	}
	if len(jobs.created) != 1 {
		t.Fatalf("created %d jobs, want 1", len(jobs.created))
	}
	got := jobs.created[0]
	if got.Codice != "JOB-9" || got.Quantita != 50 {
		t.Fatalf("unexpected job %+v", got)
	}
	if got.CostoMateriale != 0 || got.CostoManodopera != 0 || got.PrezzoVendita != 0 {
		t.Fatalf("cost fields must default to zero, got %+v", got)
	}
}

func TestDispatchUnknownDiscriminator(t *testing.T) {
	machines := &fakeMachines{}
	jobs := &fakeJobs{}
	r := newTestRouter(machines, jobs)

	res := r.Dispatch(context.Background(), `{"comando":"sposta_macchina","nome":"X"}`)

	if res.Outcome != NotRecognized {
		t.Fatalf("Outcome = %v, want NotRecognized", res.Outcome)
	}
	if len(machines.updates) != 0 || len(jobs.created) != 0 || len(jobs.updates) != 0 {
		t.Fatal("store must be untouched for unrecognized commands")
	}
}

func TestDispatchMalformedCandidate(t *testing.T) {
	machines := &fakeMachines{}
	r := newTestRouter(machines, &fakeJobs{})

	res := r.Dispatch(context.Background(), `{not json here}`)

	if res.Outcome != Malformed {
		t.Fatalf("Outcome = %v, want Malformed", res.Outcome)
	}
	if len(machines.updates) != 0 {
		t.Fatal("store must be untouched for malformed payloads")
	}
}

func TestDispatchMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
	}{
		{"update job without stato", `{"comando":"aggiorna_commessa","codice":"JOB-1"}`},
		{"update machine without nome", `{"comando":"aggiorna_macchina","stato":"Ferma"}`},
		{"create job without quantita", `{"comando":"nuova_commessa","codice":"J","prodotto":"P"}`},
		{"create job negative quantita", `{"comando":"nuova_commessa","codice":"J","prodotto":"P","quantita":-3}`},
		{"create job negative cost", `{"comando":"nuova_commessa","codice":"J","prodotto":"P","quantita":1,"costo_materiale":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := &fakeJobs{}
			machines := &fakeMachines{}
			res := newTestRouter(machines, jobs).Dispatch(context.Background(), tt.candidate)
			if res.Outcome != NotRecognized {
				t.Fatalf("Outcome = %v, want NotRecognized (%s)", res.Outcome, res.Message)
			}
			if len(jobs.created) != 0 || len(jobs.updates) != 0 || len(machines.updates) != 0 {
				t.Fatal("store must be untouched")
			}
		})
	}
}

func TestDispatchStoreFailure(t *testing.T) {
	jobs := &fakeJobs{err: errors.New("connection refused")}
	r := newTestRouter(&fakeMachines{}, jobs)

	res := r.Dispatch(context.Background(), `{"comando":"aggiorna_commessa","codice":"JOB-1","stato":"Completata"}`)

	if res.Outcome != ExecFailed {
		t.Fatalf("Outcome = %v, want ExecFailed", res.Outcome)
	}
	if !strings.Contains(res.Message, "connection refused") {
		t.Fatalf("diagnostic %q should carry the store error", res.Message)
	}
}
