package domain

import "time"

// Job statuses. The store keeps them as plain text, so a status coming
// from the oracle is passed through as-is; these constants cover the
// lifecycle the application reasons about.
const (
	JobPlanned    = "Pianificata"
	JobInProgress = "In Lavorazione"
	JobCompleted  = "Completata"
	JobSuspended  = "Sospesa"
)

// Job is a production order ("commessa"). Codice is the business key used
// by status updates. DataChiusura stays nil until the job first transitions
// to Completata; it is stamped on that transition only and never cleared by
// a later status change.
type Job struct {
	ID              int64      `json:"id"`
	Codice          string     `json:"codice"`
	Prodotto        string     `json:"prodotto"`
	Quantita        int        `json:"quantita"`
	Stato           string     `json:"stato"`
	CostoMateriale  float64    `json:"costo_materiale"`
	CostoManodopera float64    `json:"costo_manodopera"`
	PrezzoVendita   float64    `json:"prezzo_vendita"`
	DataCreazione   time.Time  `json:"data_creazione"`
	DataChiusura    *time.Time `json:"data_chiusura,omitempty"`
}

// ProfittoStimato returns the estimated profit, computed at read time and
// never stored: sale price minus material and labor costs.
func (j Job) ProfittoStimato() float64 {
	return j.PrezzoVendita - (j.CostoMateriale + j.CostoManodopera)
}

// NewJob carries the fields needed to create a job. Cost fields left at
// zero are stored as zero.
type NewJob struct {
	Codice          string
	Prodotto        string
	Quantita        int
	CostoMateriale  float64
	CostoManodopera float64
	PrezzoVendita   float64
}

// Validate checks the numeric constraints: quantity must be positive and
// the financial amounts non-negative.
func (n NewJob) Validate() error {
	if n.Quantita <= 0 {
		return ErrInvalidQuantity
	}
	if n.CostoMateriale < 0 || n.CostoManodopera < 0 || n.PrezzoVendita < 0 {
		return ErrNegativeAmount
	}
	return nil
}
