package domain

// Machine states are an open label set: the admin surface offers these
// four, but the store accepts any free-text label the operator types in.
const (
	MachineActive      = "Attiva"
	MachineStopped     = "Ferma"
	MachineMaintenance = "Manutenzione"
	MachineError       = "Errore"
)

// Machine is a plant machine. Nome is the external lookup key used by
// status updates; the store does not enforce its uniqueness.
type Machine struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Stato string `json:"stato"`
}
