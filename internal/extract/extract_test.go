package extract

import (
	"errors"
	"testing"
)

func TestExtractFencedBlock(t *testing.T) {
	reply := "Certo, eseguo subito:\n```json\n{\"comando\":\"aggiorna_macchina\",\"nome\":\"A1\",\"stato\":\"Errore\"}\n```\nFatto."

	candidate, found, err := Default().Extract(reply)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !found {
		t.Fatal("Extract() found = false, want true")
	}
	want := `{"comando":"aggiorna_macchina","nome":"A1","stato":"Errore"}`
	if candidate != want {
		t.Fatalf("candidate = %q, want %q", candidate, want)
	}
}

func TestExtractUnclosedFence(t *testing.T) {
	reply := "```json\n{\"comando\":\"aggiorna_macchina\"}"

	_, found, err := Default().Extract(reply)
	if !found {
		t.Fatal("Extract() found = false, want true (strategy matched)")
	}
	if !errors.Is(err, ErrUnclosedFence) {
		t.Fatalf("Extract() error = %v, want ErrUnclosedFence", err)
	}
}

func TestExtractPureObject(t *testing.T) {
	reply := "  {\"comando\":\"nuova_commessa\",\"codice\":\"JOB-9\"}\n"

	candidate, found, err := Default().Extract(reply)
	if err != nil || !found {
		t.Fatalf("Extract() = (%v, %v), want match", found, err)
	}
	if candidate != `{"comando":"nuova_commessa","codice":"JOB-9"}` {
		t.Fatalf("unexpected candidate %q", candidate)
	}
}

func TestExtractBracketScan(t *testing.T) {
	reply := `Ecco il comando richiesto: {"comando":"aggiorna_commessa","codice":"JOB-1","stato":"Completata"} spero vada bene.`

	candidate, found, err := Default().Extract(reply)
	if err != nil || !found {
		t.Fatalf("Extract() = (%v, %v), want match", found, err)
	}
	if candidate != `{"comando":"aggiorna_commessa","codice":"JOB-1","stato":"Completata"}` {
		t.Fatalf("unexpected candidate %q", candidate)
	}
}

func TestExtractNoCandidate(t *testing.T) {
	for _, reply := range []string{
		"La fresatrice A1 risulta attiva.",
		"",
		"solo una parentesi } senza apertura",
		"{ senza chiusura",
	} {
		t.Run(reply, func(t *testing.T) {
			candidate, found, err := Default().Extract(reply)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if found {
				t.Fatalf("Extract() found candidate %q, want none", candidate)
			}
		})
	}
}

// The bracket scan is deliberately greedy: two independent objects in one
// reply collapse into a single first-{ to last-} candidate. This pins the
// behavior down rather than fixing it.
func TestExtractBracketScanMergesMultipleObjects(t *testing.T) {
	reply := `{"comando":"aggiorna_macchina","nome":"A1","stato":"Ferma"} e poi {"comando":"aggiorna_macchina","nome":"B2","stato":"Ferma"}`

	candidate, found, err := Default().Extract(reply)
	if err != nil || !found {
		t.Fatalf("Extract() = (%v, %v), want match", found, err)
	}
	if candidate != reply {
		t.Fatalf("candidate = %q, want the full merged span", candidate)
	}
}

func TestExtractFenceWinsOverBracketScan(t *testing.T) {
	reply := "prefazione {con parentesi}\n```json\n{\"comando\":\"aggiorna_macchina\",\"nome\":\"A1\",\"stato\":\"Attiva\"}\n```"

	candidate, found, err := Default().Extract(reply)
	if err != nil || !found {
		t.Fatalf("Extract() = (%v, %v), want match", found, err)
	}
	if candidate != `{"comando":"aggiorna_macchina","nome":"A1","stato":"Attiva"}` {
		t.Fatalf("fence strategy did not take priority, got %q", candidate)
	}
}
