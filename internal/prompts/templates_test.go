package prompts

import (
	"strings"
	"testing"
)

func TestBuildChatPromptEmbedsContext(t *testing.T) {
	prompt := BuildChatPrompt(TurnContext{
		Machines:   "- Fresatrice A1 [Stato: Attiva]",
		Jobs:       "- Commessa JOB-1: Flangia (10 pz) [Stato: Pianificata]",
		ManualText: "Capitolo 3: lubrificazione mandrino.",
		History:    "User: ciao\nAssistant: Ciao!",
		Question:   "Ferma la fresatrice A1",
	})

	for _, want := range []string{
		"aggiorna_commessa",
		"nuova_commessa",
		"aggiorna_macchina",
		"- Fresatrice A1 [Stato: Attiva]",
		"- Commessa JOB-1: Flangia (10 pz) [Stato: Pianificata]",
		"Capitolo 3: lubrificazione mandrino.",
		"User: ciao",
		"Domanda: Ferma la fresatrice A1",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildChatPromptDefaultsEmptySections(t *testing.T) {
	prompt := BuildChatPrompt(TurnContext{
		Machines: "Nessuna macchina registrata.",
		Jobs:     "Nessuna commessa attiva.",
		Question: "quante macchine ci sono?",
	})
	if !strings.Contains(prompt, "(nessun manuale caricato)") {
		t.Fatal("missing manual placeholder")
	}
	if !strings.Contains(prompt, "(nessuna conversazione precedente)") {
		t.Fatal("missing history placeholder")
	}
}
