package transport

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avvvet/fabbrica-intent/internal/domain"
	"github.com/avvvet/fabbrica-intent/internal/memory"
	"github.com/avvvet/fabbrica-intent/internal/models"
	"github.com/avvvet/fabbrica-intent/internal/store"
)

// transcriptStore is a memory.Store kept in a map, enough to exercise the
// admin ops without Redis.
type transcriptStore struct {
	sessions map[string]*memory.SessionData
}

func (s *transcriptStore) LoadSession(ctx context.Context, sessionID string) (*memory.SessionData, error) {
	if sess, ok := s.sessions[sessionID]; ok {
		return sess, nil
	}
	return &memory.SessionData{SessionID: sessionID, Messages: []memory.Message{}}, nil
}

func (s *transcriptStore) SaveMessage(ctx context.Context, sessionID string, msg memory.Message) error {
	sess, _ := s.LoadSession(ctx, sessionID)
	sess.Messages = append(sess.Messages, msg)
	s.sessions[sessionID] = sess
	return nil
}

func (s *transcriptStore) ClearSession(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newAdminTransport(mem *store.Mem) *NATSTransport {
	sessions := memory.NewManager(&transcriptStore{sessions: make(map[string]*memory.SessionData)}, zerolog.Nop())
	return &NATSTransport{
		machines: mem.Machines(),
		sessions: sessions,
		logger:   zerolog.Nop(),
	}
}

func TestAdminAddMachine(t *testing.T) {
	mem := store.NewMem()
	nt := newAdminTransport(mem)

	res := nt.runAdminOp(context.Background(), &models.AdminRequest{
		Op: "add_machine", Nome: "Tornio T5", Stato: domain.MachineActive,
	})
	if !res.OK {
		t.Fatalf("OK = false: %s", res.Error)
	}

	machines, _ := mem.ListMachines(context.Background())
	if len(machines) != 1 || machines[0].Nome != "Tornio T5" {
		t.Fatalf("unexpected machines: %v", machines)
	}
}

func TestAdminAddMachineRequiresFields(t *testing.T) {
	nt := newAdminTransport(store.NewMem())

	res := nt.runAdminOp(context.Background(), &models.AdminRequest{Op: "add_machine", Nome: "X"})
	if res.OK || res.Error == "" {
		t.Fatalf("want validation error, got %+v", res)
	}
}

func TestAdminList(t *testing.T) {
	mem := store.NewMemSeeded()
	nt := newAdminTransport(mem)

	res := nt.runAdminOp(context.Background(), &models.AdminRequest{Op: "list"})
	if !res.OK {
		t.Fatalf("OK = false: %s", res.Error)
	}
	if !strings.Contains(res.Listing, "- Fresatrice A1 [Stato: Attiva]") {
		t.Fatalf("Listing = %q", res.Listing)
	}
}

func TestAdminResetSession(t *testing.T) {
	nt := newAdminTransport(store.NewMem())
	ctx := context.Background()

	if err := nt.sessions.SaveUser(ctx, "s1", "ciao"); err != nil {
		t.Fatal(err)
	}
	res := nt.runAdminOp(ctx, &models.AdminRequest{Op: "reset_session", SessionID: "s1"})
	if !res.OK {
		t.Fatalf("OK = false: %s", res.Error)
	}

	history, err := nt.sessions.History(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if history != "" {
		t.Fatalf("history after reset = %q, want empty", history)
	}
}

func TestAdminUnknownOp(t *testing.T) {
	nt := newAdminTransport(store.NewMem())

	res := nt.runAdminOp(context.Background(), &models.AdminRequest{Op: "demolisci_fabbrica"})
	if res.OK || !strings.Contains(res.Error, "demolisci_fabbrica") {
		t.Fatalf("want unknown-op error, got %+v", res)
	}
}
