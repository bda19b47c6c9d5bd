// Package command holds the closed set of structured commands the model may
// emit, the decoder that turns an extracted candidate into one of them, and
// the router that maps each command to exactly one store mutation.
package command

import "encoding/json"

// Discriminator values. The wire vocabulary is Italian because the schema
// is shown to the model verbatim and the operators work in Italian.
const (
	CmdUpdateJob     = "aggiorna_commessa"
	CmdCreateJob     = "nuova_commessa"
	CmdUpdateMachine = "aggiorna_macchina"
)

// Payload is the single wire shape for every command: comando selects the
// variant and the remaining fields are variant-specific. It is transient
// and never persisted.
type Payload struct {
	Comando string `json:"comando"`

	// aggiorna_commessa / nuova_commessa
	Codice   string `json:"codice,omitempty"`
	Prodotto string `json:"prodotto,omitempty"`
	Quantita int    `json:"quantita,omitempty"`

	// aggiorna_commessa / aggiorna_macchina
	Stato string `json:"stato,omitempty"`

	// aggiorna_macchina
	Nome string `json:"nome,omitempty"`

	// nuova_commessa optional financials, default zero
	CostoMateriale  float64 `json:"costo_materiale,omitempty"`
	CostoManodopera float64 `json:"costo_manodopera,omitempty"`
	PrezzoVendita   float64 `json:"prezzo_vendita,omitempty"`
}

// Decode parses a candidate payload. A syntax error is reported as-is so
// the caller can surface "malformed" distinctly from "not recognized";
// unknown extra fields are tolerated because models pad their output.
func Decode(candidate string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(candidate), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
