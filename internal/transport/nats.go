// Package transport exposes the chat loop over NATS request/reply: one
// request per turn on the chat subject, plus a small admin subject for the
// operations the old form-based panel used to cover.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/avvvet/fabbrica-intent/internal/config"
	"github.com/avvvet/fabbrica-intent/internal/dispatch"
	"github.com/avvvet/fabbrica-intent/internal/domain"
	"github.com/avvvet/fabbrica-intent/internal/memory"
	"github.com/avvvet/fabbrica-intent/internal/models"
	"github.com/avvvet/fabbrica-intent/internal/store"
)

type NATSTransport struct {
	conn       *nats.Conn
	config     *config.Config
	dispatcher *dispatch.Dispatcher
	machines   domain.MachineRepository
	sessions   *memory.Manager
	logger     zerolog.Logger
}

func NewNATSTransport(
	cfg *config.Config,
	dispatcher *dispatch.Dispatcher,
	machines domain.MachineRepository,
	sessions *memory.Manager,
	logger zerolog.Logger,
) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	logger.Info().Str("url", cfg.NatsURL).Msg("connected to NATS")

	return &NATSTransport{
		conn:       conn,
		config:     cfg,
		dispatcher: dispatcher,
		machines:   machines,
		sessions:   sessions,
		logger:     logger,
	}, nil
}

func (nt *NATSTransport) Start() error {
	if _, err := nt.conn.Subscribe(nt.config.NatsChatSubject, nt.handleChat); err != nil {
		return fmt.Errorf("subscribe to %s: %w", nt.config.NatsChatSubject, err)
	}
	adminSubject := nt.config.NatsChatSubject + ".admin"
	if _, err := nt.conn.Subscribe(adminSubject, nt.handleAdmin); err != nil {
		return fmt.Errorf("subscribe to %s: %w", adminSubject, err)
	}
	nt.logger.Info().
		Str("chat", nt.config.NatsChatSubject).
		Str("admin", adminSubject).
		Msg("subscribed")
	return nil
}

func (nt *NATSTransport) handleChat(msg *nats.Msg) {
	var request models.ChatRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.logger.Error().Err(err).Msg("invalid chat request")
		nt.respondChatError(msg, &request, models.ErrorBadRequest, "invalid request format")
		return
	}
	if request.Message == "" {
		nt.respondChatError(msg, &request, models.ErrorBadRequest, "message is required")
		return
	}
	if request.SessionID == "" {
		request.SessionID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	result, err := nt.dispatcher.HandleTurn(ctx, request.SessionID, request.Message, request.ManualText)
	if err != nil {
		code := models.ErrorStoreFailed
		if errors.Is(err, dispatch.ErrOracle) {
			code = models.ErrorOracleFailed
		}
		nt.logger.Error().Err(err).Str("session", request.SessionID).Str("code", code).Msg("turn failed")
		nt.respondChatError(msg, &request, code, err.Error())
		return
	}

	nt.respond(msg, &models.ChatResponse{
		SessionID:    request.SessionID,
		Reply:        result.Reply,
		Kind:         string(result.Kind),
		RawReply:     result.RawReply,
		StateChanged: result.StateChanged,
	})
}

func (nt *NATSTransport) handleAdmin(msg *nats.Msg) {
	var request models.AdminRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.respond(msg, &models.AdminResponse{OK: false, Error: "invalid request format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	nt.respond(msg, nt.runAdminOp(ctx, &request))
}

func (nt *NATSTransport) runAdminOp(ctx context.Context, request *models.AdminRequest) *models.AdminResponse {
	switch request.Op {
	case "add_machine":
		if request.Nome == "" || request.Stato == "" {
			return adminError("nome and stato are required")
		}
		if err := nt.machines.Create(ctx, request.Nome, request.Stato); err != nil {
			return adminError(err.Error())
		}
	case "list":
		machines, err := nt.machines.List(ctx)
		if err != nil {
			return adminError(err.Error())
		}
		return &models.AdminResponse{OK: true, Listing: store.RenderMachines(machines)}
	case "reset_session":
		if request.SessionID == "" {
			return adminError("session_id is required")
		}
		if err := nt.sessions.ClearSession(ctx, request.SessionID); err != nil {
			return adminError(err.Error())
		}
	default:
		return adminError(fmt.Sprintf("unknown op %q", request.Op))
	}
	return &models.AdminResponse{OK: true}
}

func adminError(detail string) *models.AdminResponse {
	return &models.AdminResponse{OK: false, Error: detail}
}

func (nt *NATSTransport) respondChatError(msg *nats.Msg, request *models.ChatRequest, code, detail string) {
	nt.respond(msg, &models.ChatResponse{
		SessionID:    request.SessionID,
		Reply:        "Si è verificato un errore durante l'elaborazione della richiesta. Riprova.",
		Kind:         models.KindError,
		ErrorCode:    &code,
		ErrorMessage: &detail,
	})
}

func (nt *NATSTransport) respond(msg *nats.Msg, response any) {
	data, err := json.Marshal(response)
	if err != nil {
		nt.logger.Error().Err(err).Msg("marshal response")
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.logger.Error().Err(err).Msg("send response")
	}
}

func (nt *NATSTransport) Close() error {
	if nt.conn != nil {
		nt.conn.Close()
		nt.logger.Info().Msg("NATS connection closed")
	}
	return nil
}
