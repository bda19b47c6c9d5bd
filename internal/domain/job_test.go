package domain

import "testing"

func TestProfittoStimato(t *testing.T) {
	j := Job{CostoMateriale: 100, CostoManodopera: 50, PrezzoVendita: 200}
	if got := j.ProfittoStimato(); got != 50 {
		t.Fatalf("ProfittoStimato() = %v, want 50", got)
	}
}

func TestNewJobValidate(t *testing.T) {
	tests := []struct {
		name string
		job  NewJob
		want error
	}{
		{"valid", NewJob{Codice: "J", Prodotto: "P", Quantita: 1}, nil},
		{"zero quantity", NewJob{Codice: "J", Prodotto: "P"}, ErrInvalidQuantity},
		{"negative quantity", NewJob{Codice: "J", Prodotto: "P", Quantita: -2}, ErrInvalidQuantity},
		{"negative cost", NewJob{Codice: "J", Prodotto: "P", Quantita: 1, CostoManodopera: -10}, ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.Validate(); got != tt.want {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfittoStimatoZeroValues(t *testing.T) {
	var j Job
	if got := j.ProfittoStimato(); got != 0 {
		t.Fatalf("ProfittoStimato() = %v, want 0", got)
	}
}
