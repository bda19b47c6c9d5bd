package store

import (
	"fmt"
	"strings"

	"github.com/avvvet/fabbrica-intent/internal/domain"
)

// RenderMachines produces the plant listing embedded in the prompt, one
// line per machine.
func RenderMachines(machines []domain.Machine) string {
	if len(machines) == 0 {
		return "Nessuna macchina registrata."
	}
	var b strings.Builder
	for i, m := range machines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s [Stato: %s]", m.Nome, m.Stato)
	}
	return b.String()
}

// RenderJobs produces the job listing embedded in the prompt. The estimated
// profit is derived here at read time so the model can answer questions
// about margins without the value ever being stored.
func RenderJobs(jobs []domain.Job) string {
	if len(jobs) == 0 {
		return "Nessuna commessa attiva."
	}
	var b strings.Builder
	for i, j := range jobs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- Commessa %s: %s (%d pz) [Stato: %s]", j.Codice, j.Prodotto, j.Quantita, j.Stato)
		if j.PrezzoVendita != 0 || j.CostoMateriale != 0 || j.CostoManodopera != 0 {
			fmt.Fprintf(&b, " [Profitto stimato: %.2f]", j.ProfittoStimato())
		}
	}
	return b.String()
}
