package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avvvet/fabbrica-intent/internal/domain"
)

// Outcome classifies what the router did with a candidate payload.
type Outcome int

const (
	// Applied: the mutation succeeded and Message is a confirmation.
	Applied Outcome = iota
	// Malformed: the candidate is not decodable JSON.
	Malformed
	// NotRecognized: valid JSON but unknown discriminator or a required
	// field is missing. The store is untouched.
	NotRecognized
	// ExecFailed: the store rejected the mutation or was unreachable.
	// The command is considered not applied.
	ExecFailed
)

// Result is what the router hands back to the orchestrator: an outcome and
// a human-readable message interpolating the acted-upon identifiers, which
// becomes the transcript entry.
type Result struct {
	Outcome Outcome
	Message string
}

// Router validates decoded commands and dispatches each to exactly one
// repository mutation. It never retries and never guesses: anything outside
// the closed command set is rejected.
type Router struct {
	machines domain.MachineRepository
	jobs     domain.JobRepository
	logger   zerolog.Logger
}

func NewRouter(machines domain.MachineRepository, jobs domain.JobRepository, logger zerolog.Logger) *Router {
	return &Router{machines: machines, jobs: jobs, logger: logger}
}

// Dispatch decodes a candidate payload and executes it.
func (r *Router) Dispatch(ctx context.Context, candidate string) Result {
	p, err := Decode(candidate)
	if err != nil {
		r.logger.Debug().Err(err).Msg("candidate payload is not valid JSON")
		return Result{
			Outcome: Malformed,
			Message: "Comando non valido: il testo estratto non è un oggetto JSON interpretabile.",
		}
	}

	switch p.Comando {
	case CmdUpdateJob:
		return r.updateJob(ctx, p)
	case CmdCreateJob:
		return r.createJob(ctx, p)
	case CmdUpdateMachine:
		return r.updateMachine(ctx, p)
	default:
		r.logger.Debug().Str("comando", p.Comando).Msg("unknown command discriminator")
		return Result{
			Outcome: NotRecognized,
			Message: fmt.Sprintf("Comando non riconosciuto: %q non è tra i comandi supportati.", p.Comando),
		}
	}
}

func (r *Router) updateJob(ctx context.Context, p *Payload) Result {
	if p.Codice == "" || p.Stato == "" {
		return notRecognized(CmdUpdateJob, "codice e stato sono obbligatori")
	}
	if err := r.jobs.UpdateStatus(ctx, p.Codice, p.Stato); err != nil {
		return r.execFailed(err, "aggiornamento commessa "+p.Codice)
	}
	r.logger.Info().Str("codice", p.Codice).Str("stato", p.Stato).Msg("job status updated")
	return applied(fmt.Sprintf("Commessa %s aggiornata allo stato %q.", p.Codice, p.Stato))
}

func (r *Router) createJob(ctx context.Context, p *Payload) Result {
	if p.Codice == "" || p.Prodotto == "" {
		return notRecognized(CmdCreateJob, "codice e prodotto sono obbligatori")
	}
	job := domain.NewJob{
		Codice:          p.Codice,
		Prodotto:        p.Prodotto,
		Quantita:        p.Quantita,
		CostoMateriale:  p.CostoMateriale,
		CostoManodopera: p.CostoManodopera,
		PrezzoVendita:   p.PrezzoVendita,
	}
	switch err := job.Validate(); {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return notRecognized(CmdCreateJob, "quantita deve essere un intero positivo")
	case errors.Is(err, domain.ErrNegativeAmount):
		return notRecognized(CmdCreateJob, "gli importi non possono essere negativi")
	case err != nil:
		return notRecognized(CmdCreateJob, err.Error())
	}
	if err := r.jobs.Create(ctx, job); err != nil {
		return r.execFailed(err, "creazione commessa "+p.Codice)
	}
	r.logger.Info().Str("codice", p.Codice).Int("quantita", p.Quantita).Msg("job created")
	return applied(fmt.Sprintf("Creata commessa %s: %s (%d pz).", p.Codice, p.Prodotto, p.Quantita))
}

func (r *Router) updateMachine(ctx context.Context, p *Payload) Result {
	if p.Nome == "" || p.Stato == "" {
		return notRecognized(CmdUpdateMachine, "nome e stato sono obbligatori")
	}
	if err := r.machines.UpdateStatus(ctx, p.Nome, p.Stato); err != nil {
		return r.execFailed(err, "aggiornamento macchina "+p.Nome)
	}
	r.logger.Info().Str("nome", p.Nome).Str("stato", p.Stato).Msg("machine status updated")
	return applied(fmt.Sprintf("Macchina %s aggiornata allo stato %q.", p.Nome, p.Stato))
}

func applied(msg string) Result {
	return Result{Outcome: Applied, Message: msg}
}

func notRecognized(cmd, reason string) Result {
	return Result{
		Outcome: NotRecognized,
		Message: fmt.Sprintf("Comando %s non riconosciuto: %s.", cmd, reason),
	}
}

func (r *Router) execFailed(err error, op string) Result {
	r.logger.Error().Err(err).Str("op", op).Msg("store mutation failed")
	return Result{
		Outcome: ExecFailed,
		Message: fmt.Sprintf("Errore di esecuzione (%s): %v. Nessuna modifica applicata.", op, err),
	}
}
