// Package prompts assembles the single prompt sent to the model each turn.
// The model keeps no memory between calls, so every prompt restates the
// full context: command schema, current listings, optional manual text,
// recent conversation and the verbatim user question.
package prompts

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are the assistant of a small factory. You answer questions about the plant and its production orders ("commesse") using ONLY the data below.

When the user asks you to CHANGE data, reply with ONLY one JSON object, nothing else, chosen from these exact shapes:
{"comando": "aggiorna_commessa", "codice": "<codice commessa>", "stato": "<nuovo stato>"}
{"comando": "nuova_commessa", "codice": "<codice>", "prodotto": "<prodotto>", "quantita": <intero positivo>, "costo_materiale": <numero>, "costo_manodopera": <numero>, "prezzo_vendita": <numero>}
{"comando": "aggiorna_macchina", "nome": "<nome macchina>", "stato": "<nuovo stato>"}

Job statuses: Pianificata, In Lavorazione, Completata, Sospesa. The financial fields of nuova_commessa are optional. Emit AT MOST one command per reply. For any other request answer conversationally in Italian, without JSON.

Dati Impianto:
%s

Commesse:
%s

Manuale:
%s

Conversazione precedente:
%s

Domanda: %s`

// TurnContext is everything a single turn embeds in the prompt.
type TurnContext struct {
	Machines   string // rendered machine listing
	Jobs       string // rendered job listing
	ManualText string // optional uploaded-manual text
	History    string // formatted prior conversation
	Question   string // verbatim user input
}

// BuildChatPrompt renders the turn prompt.
func BuildChatPrompt(tc TurnContext) string {
	manual := strings.TrimSpace(tc.ManualText)
	if manual == "" {
		manual = "(nessun manuale caricato)"
	}
	history := strings.TrimSpace(tc.History)
	if history == "" {
		history = "(nessuna conversazione precedente)"
	}
	return fmt.Sprintf(systemPrompt, tc.Machines, tc.Jobs, manual, history, tc.Question)
}
