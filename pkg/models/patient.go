package models

// Patient is the profile a plan computation runs against. It is owned by the
// persistence layer and treated as immutable for the duration of a computation.
type Patient struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Condition   string   `json:"condition"`
	Medications []string `json:"medications"`
}

// OnMedication reports whether the named medication appears in the patient's list.
func (p *Patient) OnMedication(name string) bool {
	for _, m := range p.Medications {
		if m == name {
			return true
		}
	}
	return false
}
