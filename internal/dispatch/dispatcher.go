// Package dispatch runs one conversational turn end to end: render the
// current store state into a prompt, ask the model once, extract and route
// any command found in the reply, and record both sides of the exchange in
// the transcript.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avvvet/fabbrica-intent/internal/command"
	"github.com/avvvet/fabbrica-intent/internal/domain"
	"github.com/avvvet/fabbrica-intent/internal/extract"
	"github.com/avvvet/fabbrica-intent/internal/llm"
	"github.com/avvvet/fabbrica-intent/internal/prompts"
	"github.com/avvvet/fabbrica-intent/internal/store"
)

// ErrOracle marks a turn-level failure of the text-generation call, as
// opposed to a store failure while assembling context. Callers branch on
// it with errors.Is to pick the error code they report.
var ErrOracle = errors.New("oracle unavailable")

// Kind classifies the assistant side of a turn.
type Kind string

const (
	// KindConversation: no command in the reply; it is plain chat.
	KindConversation Kind = "conversation"
	// KindApplied: a command was extracted, validated and executed.
	KindApplied Kind = "applied"
	// KindWarning: a command was attempted but not applied (malformed,
	// unrecognized or failed at the store).
	KindWarning Kind = "warning"
)

// TurnResult is the outcome of one turn. StateChanged tells the caller to
// refresh any cached listings before the next turn; it is set only when a
// mutation actually went through.
type TurnResult struct {
	Reply        string
	RawReply     string // model's unprocessed reply, kept on warnings
	Kind         Kind
	StateChanged bool
}

// Transcript is what the dispatcher needs from the memory layer.
type Transcript interface {
	History(ctx context.Context, sessionID string) (string, error)
	SaveUser(ctx context.Context, sessionID, content string) error
	SaveAssistant(ctx context.Context, sessionID, content string) error
}

// Dispatcher owns one turn of the chat loop. Turns are processed strictly
// sequentially; there is no batching, no retry and no transaction spanning
// the read-then-mutate sequence, so concurrent operators can still race
// each other between the listing fetch and the mutation.
type Dispatcher struct {
	machines   domain.MachineRepository
	jobs       domain.JobRepository
	oracle     llm.Provider
	extractor  *extract.Extractor
	router     *command.Router
	transcript Transcript
	logger     zerolog.Logger
}

func NewDispatcher(
	machines domain.MachineRepository,
	jobs domain.JobRepository,
	oracle llm.Provider,
	transcript Transcript,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		machines:   machines,
		jobs:       jobs,
		oracle:     oracle,
		extractor:  extract.Default(),
		router:     command.NewRouter(machines, jobs, logger),
		transcript: transcript,
		logger:     logger,
	}
}

// HandleTurn processes one user input. A returned error is a turn-level
// failure (store listing or oracle unavailable): nothing was appended on
// the assistant side and the user may simply resubmit.
func (d *Dispatcher) HandleTurn(ctx context.Context, sessionID, userInput, manualText string) (*TurnResult, error) {
	machines, err := d.machines.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	jobs, err := d.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	history, err := d.transcript.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	if err := d.transcript.SaveUser(ctx, sessionID, userInput); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	prompt := prompts.BuildChatPrompt(prompts.TurnContext{
		Machines:   store.RenderMachines(machines),
		Jobs:       store.RenderJobs(jobs),
		ManualText: manualText,
		History:    history,
		Question:   userInput,
	})

	raw, err := d.oracle.Generate(ctx, prompt)
	if err != nil {
		d.logger.Error().Err(err).Str("session", sessionID).Msg("oracle call failed")
		return nil, fmt.Errorf("%w: %w", ErrOracle, err)
	}

	result := d.resolve(ctx, raw)

	if err := d.transcript.SaveAssistant(ctx, sessionID, result.Reply); err != nil {
		// the turn itself succeeded; losing the transcript entry is logged,
		// not fatal
		d.logger.Warn().Err(err).Str("session", sessionID).Msg("failed to save assistant message")
	}

	d.logger.Info().
		Str("session", sessionID).
		Str("kind", string(result.Kind)).
		Bool("state_changed", result.StateChanged).
		Msg("turn completed")

	return result, nil
}

// resolve turns the model's raw reply into a transcript entry.
func (d *Dispatcher) resolve(ctx context.Context, raw string) *TurnResult {
	candidate, found, exErr := d.extractor.Extract(raw)
	if exErr != nil {
		return &TurnResult{
			Reply:    "Comando non valido: il blocco di comando nella risposta è incompleto.",
			RawReply: raw,
			Kind:     KindWarning,
		}
	}
	if !found {
		return &TurnResult{Reply: raw, Kind: KindConversation}
	}

	res := d.router.Dispatch(ctx, candidate)
	if res.Outcome == command.Applied {
		return &TurnResult{Reply: res.Message, Kind: KindApplied, StateChanged: true}
	}
	return &TurnResult{Reply: res.Message, RawReply: raw, Kind: KindWarning}
}
